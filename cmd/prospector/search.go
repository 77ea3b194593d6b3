package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-prospector/internal/config"
	"github.com/jonathan/lead-prospector/internal/export"
	"github.com/jonathan/lead-prospector/internal/llm"
	"github.com/jonathan/lead-prospector/internal/observability"
	"github.com/jonathan/lead-prospector/internal/prompts"
	"github.com/jonathan/lead-prospector/internal/prospect"
	"github.com/jonathan/lead-prospector/internal/types"
	"github.com/jonathan/lead-prospector/internal/websearch"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for business contacts in a location and niche",
	Long:  "Run one accumulated prospecting search against the grounded model, deduplicating results across pagination rounds, and write the contacts as CSV.",
	RunE:  runSearch,
}

var (
	searchLocation     string
	searchNiche        string
	searchType         string
	searchRadius       string
	searchWhatsAppOnly bool
	searchFastMode     bool
	searchDeepWeb      bool
	searchDeepIG       bool
	searchDeepFB       bool
	searchDeepLI       bool
	searchOutputFile   string
	searchConfigFile   string
	searchAPIKey       string
	searchVerbose      bool
)

func init() {
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "City, state or country to search in (required)")
	searchCmd.Flags().StringVarP(&searchNiche, "niche", "n", "", "Business niche, e.g. 'dentista' (required)")
	searchCmd.Flags().StringVar(&searchType, "type", "", "Business type refinement within the niche")
	searchCmd.Flags().StringVar(&searchRadius, "radius", "", "Search radius, e.g. '5km' (city searches only)")
	searchCmd.Flags().BoolVar(&searchWhatsAppOnly, "whatsapp-only", false, "Only return contacts with WhatsApp")
	searchCmd.Flags().BoolVar(&searchFastMode, "fast", false, "Use the low-latency model tier")
	searchCmd.Flags().BoolVar(&searchDeepWeb, "deep-web", false, "Cross-reference contact websites")
	searchCmd.Flags().BoolVar(&searchDeepIG, "deep-instagram", false, "Cross-reference Instagram profiles")
	searchCmd.Flags().BoolVar(&searchDeepFB, "deep-facebook", false, "Cross-reference Facebook pages")
	searchCmd.Flags().BoolVar(&searchDeepLI, "deep-linkedin", false, "Cross-reference LinkedIn pages")
	searchCmd.Flags().StringVarP(&searchOutputFile, "out", "o", "", "Output CSV path (default: stdout)")
	searchCmd.Flags().StringVar(&searchConfigFile, "config", "", "Path to JSON config file")
	searchCmd.Flags().StringVar(&searchAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Print detailed progress information")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(searchConfigFile)
	if err != nil {
		return err
	}

	apiKey := searchAPIKey
	if apiKey == "" {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	params := types.SearchParams{
		Location:            searchLocation,
		Niche:               searchNiche,
		Type:                searchType,
		Radius:              searchRadius,
		WhatsAppOnly:        searchWhatsAppOnly,
		DeepSearchWeb:       searchDeepWeb,
		DeepSearchInstagram: searchDeepIG,
		DeepSearchFacebook:  searchDeepFB,
		DeepSearchLinkedin:  searchDeepLI,
	}.WithFastMode(searchFastMode)
	if err := params.Validate(); err != nil {
		return err
	}

	verbose := searchVerbose || cfg.Verbose

	ctx := context.Background()
	transport, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = transport.Close() }()

	service := buildSearchService(transport, cfg, verbose)

	printer := observability.NewPrinter(os.Stdout)
	if verbose {
		printer.PrintSearchParams(params)
	}

	start := time.Now()
	contacts, err := service.Search(ctx, params)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if verbose {
		printer.PrintContacts(contacts)
		fmt.Fprintf(os.Stderr, "Search took %s\n", time.Since(start).Round(time.Second))
	}

	out := os.Stdout
	if searchOutputFile != "" {
		f, err := os.Create(searchOutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := export.WriteCSV(out, contacts); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if searchOutputFile != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d contacts to %s\n", len(contacts), searchOutputFile)
	}

	return nil
}

// buildSearchService wires the full search pipeline from configuration:
// prompt builder, grounded client, pagination accumulator and, for deep
// searches, the website scraper.
func buildSearchService(transport llm.Client, cfg *config.Config, verbose bool) *prospect.Service {
	var location *llm.GeoPoint
	if cfg.Latitude != 0 || cfg.Longitude != 0 {
		location = &llm.GeoPoint{Latitude: cfg.Latitude, Longitude: cfg.Longitude}
	}

	builder := prompts.NewBuilder(location)
	clientOpts := prospect.DefaultClientOptions()
	clientOpts.Verbose = verbose
	client := prospect.NewClient(transport, builder, clientOpts)

	accOpts := prospect.DefaultAccumulatorOptions()
	if cfg.StandardTarget > 0 {
		accOpts.StandardTarget = cfg.StandardTarget
	}
	if cfg.DeepTarget > 0 {
		accOpts.DeepTarget = cfg.DeepTarget
	}
	if cfg.MaxRounds > 0 {
		accOpts.MaxRounds = cfg.MaxRounds
	}
	if cfg.RoundPauseMs > 0 {
		accOpts.RoundPause = time.Duration(cfg.RoundPauseMs) * time.Millisecond
	}
	accOpts.Verbose = verbose

	enricher := websearch.NewEnricher(websearch.EnricherOptions{Verbose: verbose})
	return prospect.NewService(prospect.NewAccumulator(client, accOpts), enricher)
}

// resolveConfig loads the JSON config file when given, otherwise returns
// an empty config so defaults apply.
func resolveConfig(path string) (*config.Config, error) {
	if path == "" {
		return &config.Config{}, nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
