// Package text turns strings into planar signed distance functions
// using TrueType/OpenType glyph outlines.
package text

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrNoOutline is returned when a string renders to no visible contours,
// for example when it is empty or only contains spaces.
var ErrNoOutline = errors.New("text has no outline")

// Font is a parsed glyph source. It is read-only after creation and
// safe for concurrent use.
type Font struct {
	sf   *opentype.Font
	name string
	upem fixed.Int26_6
}

// Parse parses TrueType or OpenType font data.
func Parse(data []byte) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	name, err := f.Name(nil, sfnt.NameIDFull)
	if err != nil {
		name = "unknown"
	}
	return &Font{
		sf:   f,
		name: name,
		upem: fixed.I(int(f.UnitsPerEm())),
	}, nil
}

var (
	defaultOnce sync.Once
	defaultFont *Font
	defaultErr  error
)

// Default returns the embedded Go Mono font. It is parsed on first use.
func Default() (*Font, error) {
	defaultOnce.Do(func() {
		defaultFont, defaultErr = Parse(gomono.TTF)
	})
	return defaultFont, defaultErr
}

// Name returns the full name of the font.
func (f *Font) Name() string { return f.name }

// glyph returns the outline segments and advance of r in font units.
// Coordinates are y-down as stored in the font.
func (f *Font) glyph(buf *sfnt.Buffer, r rune) (sfnt.Segments, float64, error) {
	idx, err := f.sf.GlyphIndex(buf, r)
	if err != nil {
		return nil, 0, err
	}
	if idx == 0 {
		return nil, 0, fmt.Errorf("font %q has no glyph for %q", f.name, r)
	}
	adv, err := f.sf.GlyphAdvance(buf, idx, f.upem, font.HintingNone)
	if err != nil {
		return nil, 0, err
	}
	segs, err := f.sf.LoadGlyph(buf, idx, f.upem, nil)
	if err != nil {
		return nil, 0, err
	}
	return segs, fixedToFloat64(adv), nil
}

func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
