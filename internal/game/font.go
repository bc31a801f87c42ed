package game

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// LabelFontSize is the pixel size of slider captions.
const LabelFontSize = 16

// LoadFont reads a TrueType or OpenType font for labels.
func LoadFont(path string, size float64) (*text.GoTextFace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open font: %w", err)
	}
	defer f.Close()

	source, err := text.NewGoTextFaceSource(f)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return &text.GoTextFace{Source: source, Size: size}, nil
}
