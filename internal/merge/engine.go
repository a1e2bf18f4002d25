// Package merge concatenates source PDFs into one document, stamping
// signatures on the pages chosen by the watermark policy, and annotates
// single documents with free text.
package merge

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"pdf-stamp/internal/pdf"
	"pdf-stamp/internal/stamp"
	"pdf-stamp/internal/watermark"
)

// DefaultFontSize applies to annotations without a font size.
const DefaultFontSize = 12

// TextAnnotation is free text drawn on the first page of a document.
type TextAnnotation struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"fontSize,omitempty"`
}

// Engine runs merges and annotations on local files.
type Engine struct {
	policy   *watermark.Policy
	renderer *stamp.Renderer
	fonts    *pdf.FontLoader
	logger   *zap.Logger
}

func NewEngine(policy *watermark.Policy, renderer *stamp.Renderer, fonts *pdf.FontLoader, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{policy: policy, renderer: renderer, fonts: fonts, logger: logger}
}

// ValidateSignatures reports the first signature the policy would fail to
// render.
func (e *Engine) ValidateSignatures(sigs []watermark.SignatureInfo) error {
	return e.policy.Validate(sigs)
}

// Merge loads paths in order, stamps them per the policy and returns the
// concatenated document. dir receives temporary files.
//
// An input that cannot be loaded or stamped is logged and skipped; its
// index still counts when deciding which documents are first and last.
// When every input is skipped the result is a document without pages.
// Invalid signature data fails the whole merge.
func (e *Engine) Merge(ctx context.Context, dir string, paths []string, sigs []watermark.SignatureInfo) ([]byte, error) {
	if err := e.policy.Validate(sigs); err != nil {
		return nil, err
	}

	font := e.fonts.Load()
	docs := make([]*pdf.Document, 0, len(paths))

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := e.prepare(i, len(paths), path, sigs, font, dir)
		if err != nil {
			var dataErr *watermark.DataError
			if errors.As(err, &dataErr) {
				return nil, err
			}
			e.logger.Warn("skipping document",
				zap.Int("index", i),
				zap.String("path", path),
				zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		e.logger.Warn("no input could be loaded, returning an empty document", zap.Int("inputs", len(paths)))
	}

	out, err := pdf.Concat(docs)
	if err != nil {
		return nil, err
	}
	e.logger.Info("merged documents",
		zap.Int("inputs", len(paths)),
		zap.Int("merged", len(docs)),
		zap.Int("bytes", len(out)))
	return out, nil
}

func (e *Engine) prepare(index, total int, path string, sigs []watermark.SignatureInfo, font pdf.Font, dir string) (*pdf.Document, error) {
	doc, err := pdf.Load(path)
	if err != nil {
		return nil, err
	}

	plan, err := e.policy.Plan(index, total, sigs)
	if err != nil {
		return nil, err
	}
	if plan.Empty() {
		return doc, nil
	}

	page, ok := plan.Page.Page(doc.PageCount())
	if !ok {
		return doc, nil
	}
	width, height, err := doc.PageSize(page)
	if err != nil {
		return nil, err
	}

	placements := plan.Placements(width)
	canvas := pdf.NewCanvas(width, height, font)
	e.renderer.DrawAll(canvas, placements)

	overlay, err := canvas.Bytes()
	if err != nil {
		return nil, err
	}
	if err := doc.Overlay(page, overlay, dir); err != nil {
		return nil, err
	}

	xs := make([]float64, len(placements))
	for i, p := range placements {
		xs[i] = p.X
	}
	e.logger.Debug("stamped document",
		zap.Int("index", index),
		zap.Stringer("position", watermark.Classify(index, total)),
		zap.Int("page", page),
		zap.Float64s("x", xs))
	return doc, nil
}

// Annotate draws texts on the first page of the document at path, in order.
func (e *Engine) Annotate(ctx context.Context, dir, path string, texts []TextAnnotation) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := pdf.Load(path)
	if err != nil {
		return nil, err
	}
	width, height, err := doc.PageSize(1)
	if err != nil {
		return nil, fmt.Errorf("failed to read first page: %w", err)
	}

	canvas := pdf.NewCanvas(width, height, e.fonts.Load())
	for _, t := range texts {
		size := t.FontSize
		if size <= 0 {
			size = DefaultFontSize
		}
		canvas.DrawText(t.X, t.Y, t.Text, pdf.TextStyle{Size: size, Color: pdf.Gray})
	}

	overlay, err := canvas.Bytes()
	if err != nil {
		return nil, err
	}
	if err := doc.Overlay(1, overlay, dir); err != nil {
		return nil, err
	}

	e.logger.Info("annotated document",
		zap.String("path", path),
		zap.Int("texts", len(texts)))
	return doc.Bytes(), nil
}
