// Package main implements the pdfstamp CLI, which runs the merge and
// annotate operations on local files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pdf-stamp/internal/config"
	"pdf-stamp/internal/logging"
	"pdf-stamp/internal/merge"
	"pdf-stamp/internal/pdf"
	"pdf-stamp/internal/scratch"
	"pdf-stamp/internal/stamp"
	"pdf-stamp/internal/watermark"
)

var rootCmd = &cobra.Command{
	Use:           "pdfstamp",
	Short:         "Merge and stamp PDF files",
	Long:          "pdfstamp concatenates PDF files with signature stamps on the first and last documents, or draws text on the first page of a single PDF.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	rootLogLevel string
	rootLocale   string
	rootFontPath string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&rootLocale, "locale", "", "Stamp label language (overrides STAMP_LOCALE)")
	rootCmd.PersistentFlags().StringVar(&rootFontPath, "font", "", "TrueType font for stamps and text (overrides FONT_PATH)")
}

// env is what every subcommand needs to run the engine.
type env struct {
	logger  *zap.Logger
	engine  *merge.Engine
	scratch *scratch.Manager
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if rootLogLevel != "" {
		cfg.LogLevel = rootLogLevel
	}
	if rootLocale != "" {
		cfg.StampLocale = rootLocale
	}
	if rootFontPath != "" {
		cfg.FontPath = rootFontPath
	}

	logger, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		return nil, err
	}

	sm, err := scratch.NewManager(cfg.ScratchDir)
	if err != nil {
		return nil, err
	}

	engine := merge.NewEngine(
		watermark.DefaultPolicy(watermark.LabelsFor(cfg.StampLocale)),
		stamp.NewRenderer(),
		pdf.NewFontLoader(cfg.FontPath, logger),
		logger,
	)
	return &env{logger: logger, engine: engine, scratch: sm}, nil
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func main() {
	config.LoadDotEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
