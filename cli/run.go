package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/morikuni/failure/v2"
	"github.com/pkg/browser"
	"github.com/poliscout/poliscout/discover"
	"github.com/poliscout/poliscout/discover/fetch"
	"github.com/poliscout/poliscout/discover/strategy"
	"github.com/poliscout/poliscout/discover/validate"
	"github.com/poliscout/poliscout/mcp"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	typeFlag    = docTypeFlag{Value: discover.TypePrivacy}
	allFlag     bool
	jsonFlag    bool
	browserFlag bool
	timeoutFlag time.Duration

	// Root command
	rootCmd = &cobra.Command{
		Use:           "poliscout [domain]",
		Short:         "Locate a company's published policy documents",
		SilenceErrors: true,
		Long: `poliscout locates the most likely URL of a company's published policy
documents (privacy policy, terms of service, ...) for an arbitrary domain.

It runs an ordered set of resolution strategies (footer scraping, direct
path probing, sitemaps, a search-engine fallback) and validates page
content to reject login walls and look-alike pages.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if cmd.CommandPath() != "poliscout" {
				return nil
			}
			if len(args) == 0 {
				return failure.New(NoDomainSpecified,
					failure.Message("specify a domain, e.g. 'poliscout example.com'"),
				)
			}
			if len(args) != 1 {
				return failure.New(InvalidArguments,
					failure.Message(fmt.Sprintf("accepts exactly 1 arg, but received %d", len(args))),
				)
			}
			return nil
		},
		RunE: runRoot,
	}

	// Version information
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Version command
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("poliscout version %s\n", Version)
			fmt.Printf("  commit: %s\n", Commit)
			fmt.Printf("  built:  %s\n", Date)
		},
	}
)

func init() {
	rootCmd.Flags().VarP(&typeFlag, "type", "t", "Document type to discover (see 'poliscout types')")
	rootCmd.Flags().BoolVarP(&allFlag, "all", "a", false, "Discover every supported document type")
	rootCmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit machine-readable JSON")
	rootCmd.Flags().BoolVarP(&browserFlag, "browser", "b", false, "Open the discovered URL in a browser")
	rootCmd.Flags().DurationVar(&timeoutFlag, "timeout", 2*time.Minute, "Overall discovery timeout")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mcp.Command())
}

// Run executes the main CLI functionality
func Run() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	domain := args[0]

	engine, err := newEngine()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeoutFlag)
	defer cancel()

	if allFlag {
		docs, err := engine.DiscoverAll(ctx, domain)
		if err != nil {
			return err
		}
		return printDocuments(domain, docs)
	}

	docType := typeFlag.Value

	candidate, found, err := engine.DiscoverType(ctx, domain, docType)
	if err != nil {
		return err
	}
	if !found {
		printNotFound(domain, docType)
		return nil
	}

	if err := printCandidate(domain, docType, candidate); err != nil {
		return err
	}

	if browserFlag {
		if err := browser.OpenURL(candidate.URL); err != nil {
			return failure.Wrap(err)
		}
	}
	return nil
}

// newEngine wires the process-wide rate limiter, fetcher, validator and
// the default strategy order
func newEngine() (*discover.Engine, error) {
	limiter := fetch.NewRateLimiter(fetch.DefaultConfig().RateInterval)
	fetcher := fetch.New(fetch.DefaultConfig(), limiter)
	validator := validate.New()

	return discover.NewEngine(
		discover.DefaultConfig(),
		fetcher,
		validator,
		strategy.Defaults(fetcher, validator)...,
	)
}
