package pdf

import (
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// Font is a TrueType font to embed in overlays.
type Font struct {
	Family string
	Data   []byte
	// Custom is false for the built-in default font.
	Custom bool
}

// DefaultFont is Go Regular. Unlike the PDF core fonts it covers Cyrillic.
func DefaultFont() Font {
	return Font{Family: "goregular", Data: goregular.TTF}
}

// FontLoader reads the configured font file, falling back to DefaultFont
// when the file is missing or unparsable.
type FontLoader struct {
	path   string
	logger *zap.Logger
}

func NewFontLoader(path string, logger *zap.Logger) *FontLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FontLoader{path: path, logger: logger}
}

// Load is called per request, so a font installed while the server runs is
// picked up without a restart.
func (l *FontLoader) Load() Font {
	if l.path == "" {
		return DefaultFont()
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("failed to read font, using default", zap.String("path", l.path), zap.Error(err))
		}
		return DefaultFont()
	}
	if _, err := sfnt.Parse(data); err != nil {
		l.logger.Warn("invalid font file, using default", zap.String("path", l.path), zap.Error(err))
		return DefaultFont()
	}
	return Font{Family: "custom", Data: data, Custom: true}
}
