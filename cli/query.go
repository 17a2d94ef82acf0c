package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print the earthquake query",
	Long:  "Display the endpoint and the query parameters sent to the USGS event service, in request order",
	Args:  cobra.NoArgs,
	RunE:  runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	q := cfg.Query()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Endpoint: %s\n", q.Endpoint)
	fmt.Fprintln(out, "Parameters:")

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, p := range q.Params() {
		fmt.Fprintf(tw, "  %s\t%s\n", p.Name, p.Value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "URL: %s\n", q.URL())
	return nil
}
