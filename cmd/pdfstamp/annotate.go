package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pdf-stamp/internal/merge"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [flags] input.pdf",
	Short: "Draw text on the first page of a PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotate,
}

var (
	annotateOutput string
	annotateTexts  []string
)

func init() {
	annotateCmd.Flags().StringVarP(&annotateOutput, "out", "o", "", "Path to the modified PDF (required)")
	annotateCmd.Flags().StringArrayVarP(&annotateTexts, "text", "t", nil, `Text as "x,y,size,text"; size 0 means 12 (repeatable)`)

	if err := annotateCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}
	if err := annotateCmd.MarkFlagRequired("text"); err != nil {
		panic(fmt.Sprintf("failed to mark text flag as required: %v", err))
	}

	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	texts := make([]merge.TextAnnotation, 0, len(annotateTexts))
	for _, s := range annotateTexts {
		t, err := parseText(s)
		if err != nil {
			return err
		}
		texts = append(texts, t)
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	ws, err := e.scratch.Create()
	if err != nil {
		return err
	}
	defer func() { _ = e.scratch.Release(ws) }()

	out, err := e.engine.Annotate(cmd.Context(), ws.Dir, args[0], texts)
	if err != nil {
		return fmt.Errorf("annotate failed: %w", err)
	}
	if err := writeOutput(annotateOutput, out); err != nil {
		return err
	}

	e.logger.Info("wrote annotated PDF", zap.String("path", annotateOutput), zap.Int("texts", len(texts)))
	return nil
}
