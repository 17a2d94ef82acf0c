package mcp

import (
	"github.com/ka2n/yure/api"
	"github.com/spf13/cobra"
)

// Command returns the MCP server command. newGenerator is called once the
// command runs, after flags are parsed.
func Command(newGenerator func() (*api.Generator, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  "Serve the earthquake report tools over the Model Context Protocol on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := newGenerator()
			if err != nil {
				return err
			}
			return NewServer(gen, gen.Query).Run()
		},
	}
}
