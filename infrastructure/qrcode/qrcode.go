package qrcode

import (
	"github.com/skip2/go-qrcode"
)

// Generator handles QR code generation
type Generator struct {
	size int
}

// NewGenerator creates a new QR code generator producing PNGs of the given pixel size.
func NewGenerator(size int) *Generator {
	return &Generator{
		size: size,
	}
}

// Encode encodes text into a PNG image.
func (g *Generator) Encode(text string) ([]byte, error) {
	png, err := qrcode.Encode(text, qrcode.Medium, g.size)
	if err != nil {
		return nil, err
	}

	return png, nil
}
