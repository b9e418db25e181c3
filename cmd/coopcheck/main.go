// Command coopcheck is the CLI for the chicken food safety A2A service.
//
// Usage:
//
//	coopcheck serve --config config.yaml
//	coopcheck check --food corn
//	coopcheck check                      (interactive mode)
//	coopcheck discover
//	coopcheck health
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/kadirpekel/coopcheck"
	"github.com/kadirpekel/coopcheck/config"
)

// CLI defines the command-line interface.
type CLI struct {
	Version  VersionCmd  `cmd:"" help:"Show version information."`
	Serve    ServeCmd    `cmd:"" help:"Start the A2A server."`
	Check    CheckCmd    `cmd:"" help:"Check whether a food is safe for chickens."`
	Discover DiscoverCmd `cmd:"" help:"Discover available services on the server."`
	Health   HealthCmd   `cmd:"" help:"Check server health."`

	Config    string `short:"c" help:"Path to config file." type:"path"`
	Server    string `short:"s" help:"Server URL." default:"http://localhost:8080"`
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info"`
	LogFile   string `help:"Log file path (empty = stderr)."`
	LogFormat string `help:"Log format (simple or verbose)." default:"simple"`
}

// loadConfig loads the config file when one is given, otherwise returns a
// configuration with defaults applied.
func (cli *CLI) loadConfig() (*config.Config, error) {
	if cli.Config != "" {
		return config.LoadConfig(cli.Config)
	}
	return config.DefaultConfig(), nil
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(coopcheck.GetVersion().String())
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("coopcheck"),
		kong.Description("Chicken food safety checks over the A2A protocol"),
		kong.UsageOnError(),
	)

	// Initialize logger with CLI flags/env vars (before config loading)
	cleanup, err := initLoggerFromCLI(cli.LogLevel, cli.LogFile, cli.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	err = ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
