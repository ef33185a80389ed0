// Package typeface resolves font references to drawable faces with a built-in fallback chain
package typeface

import (
	"errors"
	"fmt"
	"log"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

// Source identifies where a resolved face came from
type Source uint8

const (
	SourceFile   Source = iota // User supplied TrueType/OpenType file
	SourceGoMono               // Embedded Go Mono
	SourceBasic                // Fixed 7x13 bitmap face
)

func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceGoMono:
		return "gomono"
	case SourceBasic:
		return "basic"
	}
	return fmt.Sprintf("Source(%d)", uint8(s))
}

// DPI used for point to pixel conversion; 72 makes size equal to pixel height
const DPI = 72

var ErrEmptyPath = errors.New("empty font path")

// Resolve returns a face for path at size, falling back to Go Mono and then the bitmap face
// Resolution never fails; failures along the chain are logged
func Resolve(path string, size float64) (font.Face, Source) {
	if path != "" {
		face, err := LoadFile(path, size)
		if err == nil {
			return face, SourceFile
		}
		log.Printf("Font %s unavailable, using built-in: %v", path, err)
	}

	face, err := parseFace(gomono.TTF, size)
	if err == nil {
		return face, SourceGoMono
	}
	log.Printf("Built-in Go Mono failed, using bitmap face: %v", err)

	return basicfont.Face7x13, SourceBasic
}

// LoadFile parses a TrueType/OpenType file into a face
func LoadFile(path string, size float64) (font.Face, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return parseFace(data, size)
}

func parseFace(data []byte, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", size)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return face, nil
}

// TextWidth returns the rendered pixel width of s from the origin to its right edge
func TextWidth(face font.Face, s string) int {
	if s == "" {
		return 0
	}
	b, _ := font.BoundString(face, s)
	return b.Max.X.Ceil()
}

// CursorRune returns preferred if the face has a glyph for it, otherwise fallback
func CursorRune(face font.Face, preferred, fallback rune) rune {
	if _, ok := face.GlyphAdvance(preferred); ok {
		return preferred
	}
	return fallback
}
