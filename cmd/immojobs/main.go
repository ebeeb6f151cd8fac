// Command immojobs is the headless CLI: run a scrape, re-deduplicate a
// saved collection or print its summary without starting the engine.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"immojobs-engine/internal/classify"
	"immojobs-engine/internal/collect"
	"immojobs-engine/internal/config"
	"immojobs-engine/internal/dedup"
	"immojobs-engine/internal/domain"
	"immojobs-engine/internal/report"
	"immojobs-engine/internal/scrape"
	"immojobs-engine/internal/store"
)

const version = "1.0.0"

var (
	cfgFile string
	dataDir string

	rootCmd = &cobra.Command{
		Use:   "immojobs",
		Short: "Real estate job scraper for the Paris market",
		Long:  "Collects real estate job listings from Indeed, APEC, LinkedIn and Welcome to the Jungle.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func main() {
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <data-dir>/config.yml if present)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".", "directory for output, failsafe and report files")

	rootCmd.AddCommand(newScrapeCmd())
	rootCmd.AddCommand(newDedupeCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("immojobs version %s\n", version)
		},
	})
}

func newScrapeCmd() *cobra.Command {
	var (
		output          string
		pages           int
		maxRuntime      int
		reqTimeout      int
		retries         int
		queryFR         string
		queryEN         string
		location        string
		additionalTerms string
		dateFilter      string
		skipIndeed      bool
		skipAPEC        bool
		skipLinkedIn    bool
		skipWTTJ        bool
		withReport      bool
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run a full collection across the enabled job sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Flags override the config file.
			cfg.App.DataDir = dataDir
			cfg.Output.Filename = output
			cfg.Output.Report = withReport || cfg.Output.Report
			cfg.Scraper.MaxPages = pages
			cfg.Scraper.MaxRuntimeSec = maxRuntime
			cfg.Scraper.RequestTimeoutSec = reqTimeout
			cfg.Scraper.MaxRetries = retries
			cfg.Scraper.DateFilter = dateFilter
			cfg.Queries.French = queryFR
			cfg.Queries.English = queryEN
			cfg.Queries.Location = location
			if additionalTerms != "" {
				for _, t := range strings.Split(additionalTerms, ",") {
					if t = strings.TrimSpace(t); t != "" {
						cfg.Queries.AdditionalTerms = append(cfg.Queries.AdditionalTerms, t)
					}
				}
			}
			cfg.Sites.Indeed = !skipIndeed
			cfg.Sites.APEC = !skipAPEC
			cfg.Sites.LinkedIn = !skipLinkedIn
			cfg.Sites.WTTJ = !skipWTTJ

			// Fields without a flag keep sane defaults when no config
			// file exists.
			if cfg.App.Port == 0 {
				cfg.App.Port = 38471
			}
			if cfg.Scraper.RequestsPerSecond == 0 {
				cfg.Scraper.RequestsPerSecond = 0.5
			}
			if cfg.Scraper.Burst == 0 {
				cfg.Scraper.Burst = 1
			}

			normalized, vr := config.NormalizeAndValidate(cfg)
			if !vr.OK() {
				return fmt.Errorf("invalid configuration: %s", strings.Join(vr.Errors, "; "))
			}
			for _, warn := range vr.Warnings {
				log.Printf("[cli] warning: %s", warn)
			}

			voc := normalized.Vocab()
			col := collect.New(classify.New(voc), voc.StopWords)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := scrape.NewRunner(normalized, col, nil).Run(ctx)
			if err != nil {
				return err
			}
			if res.Interrupted {
				log.Printf("[cli] run interrupted after %.1fs, %d jobs kept", res.Runtime.Seconds(), col.Len())
				return nil
			}

			stats := col.Stats()
			log.Printf("[cli] accepted=%d rejected=%d duplicates=%d final=%d",
				stats.Accepted, stats.NotRelevant, stats.Duplicates+res.Removed, col.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "paris_real_estate_jobs.json", "output JSON filename")
	cmd.Flags().IntVarP(&pages, "pages", "p", 3, "pages to scrape per site")
	cmd.Flags().IntVar(&maxRuntime, "timeout", 300, "maximum total runtime in seconds")
	cmd.Flags().IntVar(&reqTimeout, "req-timeout", 30, "per-request timeout in seconds")
	cmd.Flags().IntVar(&retries, "retries", 3, "retry attempts per request")
	cmd.Flags().StringVar(&queryFR, "query-fr", "immobilier", "French search query")
	cmd.Flags().StringVar(&queryEN, "query-en", "real estate", "English search query")
	cmd.Flags().StringVar(&location, "location", "Paris", "search location")
	cmd.Flags().StringVar(&additionalTerms, "additional-terms", "", "extra search terms, comma separated")
	cmd.Flags().StringVar(&dateFilter, "date-filter", "", "posting age filter: 1day, 1week, 2weeks or 1month")
	cmd.Flags().BoolVar(&skipIndeed, "skip-indeed", false, "skip Indeed")
	cmd.Flags().BoolVar(&skipAPEC, "skip-apec", false, "skip APEC")
	cmd.Flags().BoolVar(&skipLinkedIn, "skip-linkedin", false, "skip LinkedIn")
	cmd.Flags().BoolVar(&skipWTTJ, "skip-wttj", false, "skip Welcome to the Jungle")
	cmd.Flags().BoolVar(&withReport, "report", false, "write a summary report after the run")

	return cmd
}

func newDedupeCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Re-run the duplicate sweep over a saved collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			path := filepath.Join(dataDir, file)
			jobs, err := store.LoadJSON[domain.Job](path)
			if err != nil {
				return err
			}
			if jobs == nil {
				return fmt.Errorf("no collection at %s", path)
			}

			before := len(jobs)
			jobs = dedup.Finalize(jobs, cfg.Vocab().StopWords)
			if err := store.SaveJSON(path, jobs); err != nil {
				return err
			}

			log.Printf("[cli] removed %d duplicates, %d jobs remain", before-len(jobs), len(jobs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "paris_real_estate_jobs.json", "collection file to deduplicate")
	return cmd
}

func newReportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a summary of a saved collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(dataDir, file)
			jobs, err := store.LoadJSON[domain.Job](path)
			if err != nil {
				return err
			}
			if jobs == nil {
				return fmt.Errorf("no collection at %s", path)
			}
			return report.Write(os.Stdout, jobs, 0)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "paris_real_estate_jobs.json", "collection file to summarize")
	return cmd
}

// loadConfig reads the config file when one exists; flags fill in the
// rest either way.
func loadConfig() (config.Config, error) {
	path := cfgFile
	if path == "" {
		path = filepath.Join(dataDir, "config.yml")
		if _, err := os.Stat(path); err != nil {
			return config.Config{}, nil
		}
	}
	return config.Load(path)
}
