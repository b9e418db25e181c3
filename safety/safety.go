// Package safety classifies food items as safe, unsafe or unknown for
// chicken consumption. Classification is an exact lookup against immutable
// sets built once at startup; there is no partial or fuzzy matching.
package safety

import (
	"fmt"
	"strings"
)

// Status is the classification outcome for a food item
type Status string

const (
	StatusSafe    Status = "safe"
	StatusUnsafe  Status = "unsafe"
	StatusUnknown Status = "unknown"
)

// Result is the outcome of a food safety check
type Result struct {
	FoodItem string `json:"food_item"`
	IsSafe   *bool  `json:"is_safe"` // nil when status is unknown
	Status   Status `json:"status"`
	Message  string `json:"message"`
}

// Checker performs food safety lookups. The underlying sets are populated
// at construction and never mutated afterwards, so a single Checker is safe
// for concurrent use without locking.
type Checker struct {
	safe   map[string]struct{}
	unsafe map[string]struct{}
}

// Option customizes a Checker at construction time
type Option func(*Checker)

// WithSafeFoods adds food names to the safe set
func WithSafeFoods(foods []string) Option {
	return func(c *Checker) {
		for _, food := range foods {
			c.safe[Normalize(food)] = struct{}{}
		}
	}
}

// WithUnsafeFoods adds food names to the unsafe set
func WithUnsafeFoods(foods []string) Option {
	return func(c *Checker) {
		for _, food := range foods {
			c.unsafe[Normalize(food)] = struct{}{}
		}
	}
}

// NewChecker creates a Checker seeded with the built-in classification sets.
// Options may extend the sets before the Checker is handed out; a name listed
// in both sets is treated as unsafe.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		safe:   make(map[string]struct{}, len(safeFoods)),
		unsafe: make(map[string]struct{}, len(unsafeFoods)),
	}

	for _, food := range safeFoods {
		c.safe[food] = struct{}{}
	}
	for _, food := range unsafeFoods {
		c.unsafe[food] = struct{}{}
	}

	for _, opt := range opts {
		opt(c)
	}

	// Keep the sets disjoint: unsafe wins
	for food := range c.unsafe {
		delete(c.safe, food)
	}

	return c
}

// Normalize prepares a food name for lookup: trim whitespace, lower-case.
func Normalize(food string) string {
	return strings.ToLower(strings.TrimSpace(food))
}

// Classify looks up a food item and returns its classification. Lookup order
// is safe set, then unsafe set, then unknown. The raw input is echoed back in
// Result.FoodItem; the message uses the normalized name.
func (c *Checker) Classify(food string) Result {
	normalized := Normalize(food)

	if _, ok := c.safe[normalized]; ok {
		isSafe := true
		return Result{
			FoodItem: food,
			IsSafe:   &isSafe,
			Status:   StatusSafe,
			Message:  fmt.Sprintf("%s is safe for chickens to eat.", normalized),
		}
	}

	if _, ok := c.unsafe[normalized]; ok {
		isSafe := false
		return Result{
			FoodItem: food,
			IsSafe:   &isSafe,
			Status:   StatusUnsafe,
			Message:  fmt.Sprintf("%s is NOT safe for chickens and should be avoided.", normalized),
		}
	}

	return Result{
		FoodItem: food,
		IsSafe:   nil,
		Status:   StatusUnknown,
		Message:  fmt.Sprintf("Safety information for %s is not available. Please consult a veterinarian.", normalized),
	}
}

// SafeCount returns the number of foods in the safe set.
func (c *Checker) SafeCount() int { return len(c.safe) }

// UnsafeCount returns the number of foods in the unsafe set.
func (c *Checker) UnsafeCount() int { return len(c.unsafe) }
