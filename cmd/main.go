package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"storefront-scraper/adapters"
	"storefront-scraper/export"
	"storefront-scraper/internal/types"
	"storefront-scraper/pipeline"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	// Parse command line flags
	var (
		urlFlag      = flag.String("url", "", "Storefront URL to scrape (required)")
		platformFlag = flag.String("platform", "auto", "Platform: auto, shopify, wordpress, both")
		methodsFlag  = flag.String("methods", "", "Comma-separated fetch methods (overrides -platform defaults)")
		formatFlag   = flag.String("format", "csv", "Export format: csv or json")
		outputFlag   = flag.String("output", "", "Output file path (default: stdout)")
		previewFlag  = flag.Bool("preview", false, "Print a preview table of the first rows")
		previewLimit = flag.Int("preview-limit", 20, "Maximum rows in the preview table")
		vendorsFlag  = flag.String("vendors", "", "Comma-separated vendor filter")
		typesFlag    = flag.String("types", "", "Comma-separated product type filter")
		requestDelay = flag.Duration("delay", 1*time.Second, "Delay between requests")
		maxRetries   = flag.Int("retries", 3, "Maximum retry attempts")
		timeout      = flag.Duration("timeout", 30*time.Second, "Request timeout")
		useBrowser   = flag.Bool("browser", false, "Use headless browser for JavaScript-heavy sites")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if *urlFlag == "" {
		log.Fatal("The -url flag is required")
	}

	// Setup logging
	logger := logrus.New()

	// Set timestamp format with milliseconds
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	// Set log level from LOG_LEVEL env if present
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	// Create configuration
	config := types.DefaultConfig()
	config.RequestDelay = *requestDelay
	config.MaxRetries = *maxRetries
	config.Timeout = *timeout
	config.UseHeadlessBrowser = *useBrowser

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	methods := resolveMethods(ctx, config, logger, *urlFlag, *platformFlag, *methodsFlag)

	p := pipeline.New(config, logger)
	defer p.Close()

	result, err := p.Run(ctx, *urlFlag, methods)
	if err != nil {
		logger.Fatalf("Scrape failed: %v", err)
	}

	filter := pipeline.Filter{
		Vendors:      splitList(*vendorsFlag),
		ProductTypes: splitList(*typesFlag),
	}
	rows := filter.Apply(result.Rows)
	if len(rows) != len(result.Rows) {
		logger.Infof("Filter kept %d of %d rows", len(rows), len(result.Rows))
	}

	if *previewFlag {
		export.RenderPreview(os.Stdout, rows, *previewLimit)
	}

	// Output results
	if *outputFlag != "" {
		f, err := os.Create(*outputFlag)
		if err != nil {
			logger.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()

		if err := export.Write(f, export.Format(*formatFlag), rows); err != nil {
			logger.Fatalf("Failed to write output: %v", err)
		}
		logger.Infof("Results written to: %s", *outputFlag)
	} else if !*previewFlag {
		if err := export.Write(os.Stdout, export.Format(*formatFlag), rows); err != nil {
			logger.Fatalf("Failed to write output: %v", err)
		}
		fmt.Println()
	}

	// Print summary
	summary := pipeline.Summarize(result)
	logger.Infof("Scrape completed successfully")
	logger.Infof("Total products found: %d", summary.TotalProducts)
	logger.Infof("Total rows: %d (%d variant rows, %d available)", summary.TotalRows, summary.VariantRows, summary.AvailableRows)
	logger.Infof("Unique vendors: %d", summary.UniqueVendors)
	if summary.AveragePrice != "" {
		logger.Infof("Average price: %s", summary.AveragePrice)
	}
	for name, count := range result.CollectionCounts {
		logger.Infof("Collection %q: %d products", name, count)
	}
}

// resolveMethods turns the -platform/-methods flags into a fetch method
// list, running platform detection when asked to.
func resolveMethods(ctx context.Context, config *types.Config, logger *logrus.Logger, url, platformFlag, methodsFlag string) []pipeline.Method {
	if methodsFlag != "" {
		var methods []pipeline.Method
		for _, m := range splitList(methodsFlag) {
			methods = append(methods, pipeline.Method(m))
		}
		return methods
	}

	var platform types.Platform
	switch platformFlag {
	case "shopify":
		platform = types.PlatformShopify
	case "wordpress":
		platform = types.PlatformWordPress
	case "both":
		platform = types.PlatformUnknown
	default:
		detector := adapters.NewDetector(config, logger)
		defer detector.Close()
		platform = detector.Detect(ctx, url)
		logger.Infof("Detected platform: %s", platform)
	}

	return pipeline.MethodsForPlatform(platform)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
