// Package mcp implements the Model Context Protocol server for yure.
//
// The server exposes the earthquake report and its query URL as tools, so
// MCP clients can read the same report the terminal shows.
package mcp
