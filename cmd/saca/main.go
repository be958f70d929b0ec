package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"imgal/pkg/analysis"
	"imgal/pkg/config"
)

func main() {
	// Parse command line arguments
	channelA := flag.String("a", "", "Channel A image (2d) or slice directory (3d)")
	channelB := flag.String("b", "", "Channel B image (2d) or slice directory (3d)")
	configPath := flag.String("config", "saca.yaml", "Configuration file")
	outputDir := flag.String("output", "", "Output directory (overrides config)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (overrides config)")
	mode := flag.String("mode", "", "Analysis mode, 2d or 3d (overrides config)")
	thresholdA := flag.Float64("threshold-a", 0, "Channel A intensity threshold (overrides config)")
	thresholdB := flag.Float64("threshold-b", 0, "Channel B intensity threshold (overrides config)")
	autoThreshold := flag.String("auto-threshold", "", "Threshold method, manual or otsu (overrides config)")
	pValues := flag.Bool("pvalues", true, "Compute p-values (overrides config)")
	verbose := flag.Bool("verbose", false, "Enable debug logging (overrides config)")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			logger.Fatal().Err(err).Msg("Failed to write configuration")
		}
		logger.Info().Str("path", *configPath).Msg("Default configuration written")
		return
	}

	// Validate inputs
	if *channelA == "" || *channelB == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Flags given on the command line take precedence over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output":
			cfg.Output.Directory = *outputDir
		case "workers":
			cfg.Processing.Workers = *workers
		case "mode":
			cfg.Processing.Mode = *mode
		case "threshold-a":
			cfg.Colocalization.ThresholdA = *thresholdA
		case "threshold-b":
			cfg.Colocalization.ThresholdB = *thresholdB
		case "auto-threshold":
			cfg.Colocalization.AutoThreshold = *autoThreshold
		case "pvalues":
			cfg.Colocalization.PValues = *pValues
		case "verbose":
			cfg.Output.Verbose = *verbose
		}
	})

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}
	if cfg.Output.Verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	fmt.Fprintln(os.Stderr, "================================")
	fmt.Fprintln(os.Stderr, "SPATIALLY ADAPTIVE COLOCALIZATION ANALYSIS")
	fmt.Fprintln(os.Stderr, "================================")

	params := analysis.ParamsFromConfig(cfg, *channelA, *channelB)
	analyzer := analysis.NewAnalyzer(params, logger)

	startTime := time.Now()
	if err := analyzer.Process(); err != nil {
		logger.Fatal().Err(err).Msg("Analysis failed")
	}

	summary := analyzer.Summary()
	fmt.Printf("\nAnalysis %s completed in %.2f seconds\n", summary.RunID, time.Since(startTime).Seconds())
	fmt.Printf("Pixels analyzed: %d\n", summary.Pixels)
	fmt.Printf("Colocalized (z > 0): %d\n", summary.ZScores.Positive)
	fmt.Printf("Anti-colocalized (z < 0): %d\n", summary.ZScores.Negative)
	fmt.Printf("z-score mean %.3f, std dev %.3f, range [%.3f, %.3f]\n",
		summary.ZScores.Mean, summary.ZScores.StdDev, summary.ZScores.Min, summary.ZScores.Max)
	if cfg.Colocalization.PValues {
		fmt.Printf("Significant at alpha %.3f: %d\n", summary.SignificanceLevel, summary.Significant)
	}

	fmt.Println("\nOutputs:")
	for _, path := range summary.Outputs {
		fmt.Printf("- %s\n", path)
	}
}
