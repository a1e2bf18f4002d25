package merge

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pdf-stamp/internal/fetch"
	"pdf-stamp/internal/scratch"
	"pdf-stamp/internal/utils"
	"pdf-stamp/internal/watermark"
)

// Pipeline downloads remote documents into a private workspace and runs the
// engine on them.
type Pipeline struct {
	fetcher fetch.Fetcher
	engine  *Engine
	scratch *scratch.Manager
	logger  *zap.Logger
}

func NewPipeline(fetcher fetch.Fetcher, engine *Engine, sm *scratch.Manager, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{fetcher: fetcher, engine: engine, scratch: sm, logger: logger}
}

// ProcessURLs downloads urls one at a time, in order, and merges them.
// A failed download is logged and that input contributes no pages.
func (p *Pipeline) ProcessURLs(ctx context.Context, urls []string, sigs []watermark.SignatureInfo) ([]byte, error) {
	if err := p.engine.ValidateSignatures(sigs); err != nil {
		return nil, err
	}

	ws, err := p.scratch.Create()
	if err != nil {
		return nil, err
	}
	defer p.release(ws)

	logger := p.logger.With(zap.String("workspace", ws.ID))
	paths := make([]string, len(urls))
	for i, u := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := fmt.Sprintf("%02d-%s", i+1, utils.FilenameFromURL(u, "document.pdf"))
		paths[i] = ws.Path(name)

		if err := p.download(ctx, ws, name, u); err != nil {
			logger.Warn("download failed", zap.Int("index", i), zap.String("url", u), zap.Error(err))
			continue
		}
		logger.Debug("downloaded", zap.Int("index", i), zap.String("url", u), zap.String("path", paths[i]))
	}

	return p.engine.Merge(ctx, ws.Dir, paths, sigs)
}

// AnnotateURL downloads one document and draws texts on its first page.
func (p *Pipeline) AnnotateURL(ctx context.Context, rawURL string, texts []TextAnnotation) ([]byte, error) {
	ws, err := p.scratch.Create()
	if err != nil {
		return nil, err
	}
	defer p.release(ws)

	name := utils.FilenameFromURL(rawURL, "document.pdf")
	if err := p.download(ctx, ws, name, rawURL); err != nil {
		return nil, err
	}
	return p.engine.Annotate(ctx, ws.Dir, ws.Path(name), texts)
}

func (p *Pipeline) download(ctx context.Context, ws *scratch.Workspace, name, rawURL string) error {
	data, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}
	_, err = ws.WriteFile(name, data)
	return err
}

func (p *Pipeline) release(ws *scratch.Workspace) {
	if err := p.scratch.Release(ws); err != nil {
		p.logger.Warn("failed to remove workspace", zap.String("workspace", ws.ID), zap.Error(err))
	}
}
