// Package coopcheck provides a chicken food safety lookup service speaking
// the A2A (Agent-to-Agent) protocol.
//
// The service answers one question: is a given food safe for chickens to
// eat? Classification is an exact lookup against immutable safe/unsafe sets;
// anything in neither set is unknown. Requests and responses travel in a
// fixed JSON envelope paired via correlation IDs.
//
// # Quick Start
//
// Install coopcheck:
//
//	go install github.com/kadirpekel/coopcheck/cmd/coopcheck@latest
//
// Start the server:
//
//	coopcheck serve
//
// Check a food:
//
//	coopcheck check --food corn
//
// Or run an interactive session:
//
//	coopcheck check
//
// # Packages
//
//   - a2a: envelope types, validation, HTTP client and server
//   - safety: the classification sets and lookup
//   - config: YAML configuration with env expansion
//   - logger: slog setup
//   - observability: Prometheus metrics
package coopcheck
