package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kadirpekel/coopcheck/a2a"
	"github.com/kadirpekel/coopcheck/safety"
)

const defaultServerURL = "http://localhost:8080"

// newClient builds an A2A client from the CLI flags and optional config file.
// The --server flag wins over the config file when explicitly set.
func newClient(cli *CLI) (*a2a.Client, error) {
	cfg, err := cli.loadConfig()
	if err != nil {
		return nil, err
	}

	serverURL := cfg.Client.ServerURL
	if cli.Server != "" && cli.Server != defaultServerURL {
		serverURL = cli.Server
	}

	return a2a.NewClient(&a2a.ClientConfig{
		ServerURL: serverURL,
		Timeout:   cfg.Client.TimeoutDuration(),
		Agent: a2a.AgentInfo{
			AgentID: cfg.Client.AgentID,
			Name:    cfg.Client.AgentName,
			Version: cfg.Version,
		},
	}), nil
}

// ============================================================================
// CHECK - Single lookup or interactive session
// ============================================================================

// CheckCmd checks food safety, interactively when no food is given.
type CheckCmd struct {
	Food string `help:"Food item to check (interactive mode if not provided)."`
}

func (c *CheckCmd) Run(cli *CLI) error {
	client, err := newClient(cli)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if c.Food != "" {
		result, err := client.CheckFood(ctx, c.Food)
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	}

	return runInteractive(ctx, client, cli.Server)
}

// runInteractive reads food names from stdin until the user quits
func runInteractive(ctx context.Context, client *a2a.Client, serverURL string) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("🐔 Chicken Food Safety Checker (A2A Client)")
	fmt.Printf("Connected to: %s\n", serverURL)
	fmt.Println("Type food items to check their safety for chickens.")
	fmt.Println("Type 'quit' or 'exit' to stop.")
	fmt.Println()

	for {
		fmt.Print("Enter food item: ")

		input, err := reader.ReadString('\n')
		if err != nil {
			// EOF ends the session
			fmt.Println()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit", "exit":
			fmt.Println("Goodbye!")
			return nil
		}

		result, err := client.CheckFood(ctx, input)
		if err != nil {
			fmt.Printf("❌ Error: %v\n\n", err)
			continue
		}

		printResult(result)
		fmt.Println()
	}
}

// printResult formats a safety check result for display
func printResult(result *safety.Result) {
	marker := "❓"
	isSafe := "unknown"
	if result.IsSafe != nil {
		if *result.IsSafe {
			marker = "✅"
			isSafe = "true"
		} else {
			marker = "❌"
			isSafe = "false"
		}
	}

	fmt.Printf("\n%s Food Safety Check Result:\n", marker)
	fmt.Printf("Food Item: %s\n", result.FoodItem)
	fmt.Printf("Status: %s\n", strings.ToUpper(string(result.Status)))
	fmt.Printf("Safe for Chickens: %s\n", isSafe)
	fmt.Printf("Message: %s\n", result.Message)
}

// ============================================================================
// DISCOVER / HEALTH
// ============================================================================

// DiscoverCmd lists the services the server offers.
type DiscoverCmd struct{}

func (c *DiscoverCmd) Run(cli *CLI) error {
	client, err := newClient(cli)
	if err != nil {
		return err
	}

	directory, err := client.Discover(context.Background())
	if err != nil {
		return err
	}

	fmt.Println("Available Services:")
	return printJSON(directory)
}

// HealthCmd checks server liveness.
type HealthCmd struct{}

func (c *HealthCmd) Run(cli *CLI) error {
	client, err := newClient(cli)
	if err != nil {
		return err
	}

	status, err := client.Health(context.Background())
	if err != nil {
		return err
	}

	fmt.Println("Server Health:")
	return printJSON(status)
}

// printJSON pretty-prints a value as indented JSON
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
