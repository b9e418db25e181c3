package safety

// Built-in classification sets. Entries are stored normalized (lower-case,
// trimmed) since lookups happen on normalized names.

var safeFoods = []string{
	"corn", "wheat", "oats", "barley", "rice", "quinoa", "millet",
	"lettuce", "spinach", "kale", "cabbage", "broccoli", "carrots",
	"peas", "green beans", "squash", "pumpkin", "cucumber",
	"tomatoes", "bell peppers", "zucchini", "sweet potato",
	"apples", "berries", "grapes", "melon", "banana",
	"chicken feed", "layer feed", "scratch grains",
	"sunflower seeds", "pumpkin seeds", "herbs", "clover",
}

var unsafeFoods = []string{
	"chocolate", "avocado", "onions", "garlic", "mushrooms",
	"raw beans", "raw potatoes", "green tomatoes", "rhubarb",
	"apple seeds", "cherry pits", "caffeine", "alcohol",
	"moldy food", "salty snacks", "candy", "processed food",
}
