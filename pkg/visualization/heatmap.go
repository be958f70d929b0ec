// Package visualization renders colocalization z-scores as images. Negative
// scores (anti-colocalization) map to blue, zero to white and positive scores
// (colocalization) to red, blended in CIE L*a*b* space.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/mat"
)

var (
	negativeColor = colorful.Color{R: 0.230, G: 0.299, B: 0.754}
	neutralColor  = colorful.Color{R: 0.865, G: 0.865, B: 0.865}
	positiveColor = colorful.Color{R: 0.706, G: 0.016, B: 0.150}
)

// ZColor returns the diverging color of z, saturating at |z| >= limit.
func ZColor(z, limit float64) color.RGBA {
	t := 0.0
	if limit > 0 {
		t = math.Max(-1, math.Min(1, z/limit))
	}

	var c colorful.Color
	if t < 0 {
		c = neutralColor.BlendLab(negativeColor, -t)
	} else {
		c = neutralColor.BlendLab(positiveColor, t)
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// AutoLimit returns the largest |z| in data, or 1 when data is all zero.
func AutoLimit(data []float64) float64 {
	limit := 0.0
	for _, v := range data {
		limit = math.Max(limit, math.Abs(v))
	}
	if limit == 0 {
		return 1
	}
	return limit
}

// Heatmap renders a z-score map. A limit <= 0 scales colors to the largest
// absolute z-score of the map.
func Heatmap(z *mat.Dense, limit float64) *image.RGBA {
	rows, cols := z.Dims()
	if limit <= 0 {
		limit = AutoLimit(z.RawMatrix().Data)
	}

	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			img.SetRGBA(x, y, ZColor(z.At(y, x), limit))
		}
	}
	return img
}

// SavePNG writes img to filename as a PNG image
func SavePNG(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", filename, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error encoding %s: %w", filename, err)
	}
	return nil
}
