package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog"

	"hospital-planner/calibration"
	"hospital-planner/formatter"
	"hospital-planner/metrics"
)

func main() {
	// Define flags
	input := flag.String("input", "", "Input event-log CSV file (required)")
	out := flag.String("out", "", "Calibration params output file (.json or .yaml); empty skips writing")
	format := flag.String("format", "text", "Summary output format: text|json|csv")
	metricsAddr := flag.String("metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")

	// Parse command-line flags
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			log.Info().Str("addr", *metricsAddr).Msg("metrics server listening")
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				log.Error().Err(err).Msg("metrics server error")
			}
		}()
	}

	// Validate required input flag
	if *input == "" {
		fmt.Println("Error: -input flag is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Validate format enum
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[*format] {
		fmt.Printf("Error: format must be one of: text, json, csv (got: %s)\n", *format)
		os.Exit(1)
	}

	// Open input file
	file, err := os.Open(*input)
	if err != nil {
		log.Fatal().Err(err).Str("path", *input).Msg("opening event log")
	}
	defer file.Close()

	started := time.Now()
	params, err := calibration.Extract(file)
	if err != nil {
		log.Fatal().Err(err).Msg("extracting calibration params")
	}
	metrics.ExtractorDurationSeconds.Observe(time.Since(started).Seconds())

	if *out != "" {
		if err := params.WriteFile(*out); err != nil {
			log.Fatal().Err(err).Str("path", *out).Msg("writing params file")
		}
		log.Info().Str("path", *out).Int("activities", len(params.MeanSec)).Msg("params written")
	}

	// Output based on format
	switch *format {
	case "json":
		fmt.Print(formatter.FormatJSON(params))
	case "csv":
		fmt.Print(formatter.FormatCSV(params))
	default: // "text"
		fmt.Print(formatter.FormatText(params))
	}

	// Handle metrics pushing or waiting
	if *pushGateway != "" {
		jobName := "hospital_planner_extractor"
		if err := push.New(*pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			log.Error().Err(err).Msg("pushing to Pushgateway")
		} else {
			log.Info().Msg("metrics pushed to Pushgateway")
		}
	}

	if *wait && *metricsAddr != "" {
		fmt.Println("\nProcess kept alive for metric scraping. Press Ctrl+C to exit.")
		// Wait for interrupt signal
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		fmt.Println("\nExiting...")
	} else if *metricsAddr != "" && *pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		// but typically batch jobs should use pushgateway or wait
		time.Sleep(100 * time.Millisecond)
	}
}
