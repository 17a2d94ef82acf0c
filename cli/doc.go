// Package cli implements the command-line interface for yure.
//
// The cli package provides:
// - The root command that fetches and shows the earthquake report
// - A scrollable pager with interactive search
// - Plain output when stdout is not a terminal
// - The query, version, serve and mcp subcommands
package cli
