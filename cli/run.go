package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ka2n/yure/api"
	"github.com/ka2n/yure/config"
	"github.com/ka2n/yure/display"
	"github.com/ka2n/yure/log"
	"github.com/ka2n/yure/mcp"
	"github.com/mattn/go-isatty"
	"github.com/morikuni/failure/v2"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	browserFlag  bool
	noPagerFlag  bool
	configFlag   string
	timezoneFlag string
	style        styleFlag

	// Root command
	rootCmd = &cobra.Command{
		Use:           "yure",
		Short:         "Show significant earthquakes around El Salvador",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: `yure fetches the 2022 earthquakes of magnitude 2 or more between
13-15°N and 88-92°W from the USGS event service and shows them as a report.

On a terminal the report opens in a scrollable pager; otherwise it is
written to stdout.`,
		Args: cobra.NoArgs,
		RunE: runRoot,
	}

	// Version command
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print detailed version information about yure",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "yure version %s\n", api.Version)
			if api.VersionCommit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", api.VersionCommit)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (default $XDG_CONFIG_HOME/yure/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&timezoneFlag, "timezone", "", "IANA time zone for event times (default local)")
	rootCmd.Flags().VarP(&style, "style", "s", "Display style ("+styleNames()+")")
	rootCmd.Flags().BoolVar(&noPagerFlag, "no-pager", false, "Write the report to stdout instead of the pager")
	rootCmd.Flags().BoolVarP(&browserFlag, "browser", "b", false, "Open the query URL in the browser")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mcp.Command(newGeneratorFromFlags))
}

// Run executes the main CLI functionality
func Run() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file and applies command line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	if timezoneFlag != "" {
		cfg.Timezone = timezoneFlag
		if _, err := cfg.Location(); err != nil {
			return nil, err
		}
	}
	if cfg.Debug {
		log.SetDebug(true)
	}
	return cfg, nil
}

func newGenerator(cfg *config.Config) (*api.Generator, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	query := cfg.Query()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	gen := api.NewGenerator(api.NewClient(), loc)
	gen.Query = query
	return gen, nil
}

func newGeneratorFromFlags() (*api.Generator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newGenerator(cfg)
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	if browserFlag {
		u := gen.Query.URL()
		fmt.Fprintf(cmd.OutOrStdout(), "Opening query in browser: %s\n", u)
		if err := browser.OpenURL(u); err != nil {
			return failure.New(OpenBrowserFailed,
				failure.Message("Failed to open browser"),
				failure.Context{"url": u, "cause": err.Error()},
			)
		}
		return nil
	}

	out := cmd.OutOrStdout()
	tty := isTerminal(out)
	stylizer := display.Stylizer{WordWrap: cfg.WordWrap}
	st := resolveStyle(cfg.Style, tty)

	if tty && !noPagerFlag {
		return runPager(cmd.Context(), gen, stylizer, st)
	}
	return writeReport(cmd.Context(), out, gen, stylizer, st)
}

// resolveStyle picks the flag, then the config value, then a terminal default
func resolveStyle(configured string, tty bool) display.Style {
	if style.IsSet {
		return style.Value
	}
	if st, err := display.ParseStyle(configured); err == nil {
		return st
	}
	if tty {
		return display.StyleANSI
	}
	return display.StylePlain
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runPager(ctx context.Context, gen *api.Generator, stylizer display.Stylizer, st display.Style) error {
	load := func() string {
		result := gen.Generate(ctx)
		text, err := stylizer.Apply(string(result.Text), st)
		if err != nil {
			log.Warn("styling failed, showing plain text", "style", st, "error", err)
			text, _ = stylizer.Apply(string(result.Text), display.StylePlain)
		}
		return text
	}
	if err := RunPager(load); err != nil {
		return failure.New(PagerFailed,
			failure.Message("Failed to run pager"),
			failure.Context{"cause": err.Error()},
		)
	}
	return nil
}

func writeReport(ctx context.Context, w io.Writer, gen *api.Generator, stylizer display.Stylizer, st display.Style) error {
	result := gen.Generate(ctx)
	text, err := stylizer.Apply(string(result.Text), st)
	if err != nil {
		return err
	}

	sink := display.NewWriterSink(w)
	display.Render(sink, text)
	display.Fit(sink)
	if err := sink.Err(); err != nil {
		return failure.New(OutputFailed,
			failure.Message("Failed to write report"),
			failure.Context{"cause": err.Error()},
		)
	}
	return nil
}
