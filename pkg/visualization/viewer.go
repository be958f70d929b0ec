package visualization

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"imgal/pkg/grid"
)

// Viewer renders slices of a 3D z-score volume. The volume is indexed as
// (plane, row, col), which the viewer exposes as the z, y and x axes.
type Viewer struct {
	// volume holds the z-scores
	volume *grid.Grid3[float64]

	// limit is the |z| mapped to full color
	limit float64
}

// NewViewer creates a viewer over a z-score volume. A limit <= 0 scales colors
// to the largest absolute z-score of the whole volume, so every slice shares
// one color scale.
func NewViewer(volume *grid.Grid3[float64], limit float64) *Viewer {
	if limit <= 0 {
		limit = AutoLimit(volume.Data)
	}
	return &Viewer{
		volume: volume,
		limit:  limit,
	}
}

// ExtractSlice renders the slice at position along the given axis
func (v *Viewer) ExtractSlice(axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}

	width, height, depth := v.volume.Cols, v.volume.Rows, v.volume.Planes
	var img *image.RGBA

	switch axis {
	case "x", "X":
		// YZ plane
		if position >= width {
			return nil, fmt.Errorf("position %d exceeds width %d", position, width)
		}
		img = image.NewRGBA(image.Rect(0, 0, depth, height))
		for y := 0; y < height; y++ {
			for z := 0; z < depth; z++ {
				img.SetRGBA(z, y, ZColor(v.volume.At(z, y, position), v.limit))
			}
		}

	case "y", "Y":
		// XZ plane
		if position >= height {
			return nil, fmt.Errorf("position %d exceeds height %d", position, height)
		}
		img = image.NewRGBA(image.Rect(0, 0, width, depth))
		for z := 0; z < depth; z++ {
			for x := 0; x < width; x++ {
				img.SetRGBA(x, z, ZColor(v.volume.At(z, position, x), v.limit))
			}
		}

	case "z", "Z":
		// XY plane
		if position >= depth {
			return nil, fmt.Errorf("position %d exceeds depth %d", position, depth)
		}
		img = image.NewRGBA(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				img.SetRGBA(x, y, ZColor(v.volume.At(position, y, x), v.limit))
			}
		}

	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	return img, nil
}

// ExtractRegion copies a sub-volume of z-scores starting at (startX, startY,
// startZ)
func (v *Viewer) ExtractRegion(startX, startY, startZ, sizeX, sizeY, sizeZ int) (*grid.Grid3[float64], error) {
	if startX < 0 || startY < 0 || startZ < 0 {
		return nil, fmt.Errorf("start coordinates must be non-negative")
	}
	if sizeX <= 0 || sizeY <= 0 || sizeZ <= 0 {
		return nil, fmt.Errorf("size dimensions must be positive")
	}
	if startX+sizeX > v.volume.Cols || startY+sizeY > v.volume.Rows || startZ+sizeZ > v.volume.Planes {
		return nil, fmt.Errorf("region extends beyond volume boundaries")
	}

	region := grid.NewGrid3[float64](sizeZ, sizeY, sizeX)
	for z := 0; z < sizeZ; z++ {
		for y := 0; y < sizeY; y++ {
			copy(region.Lane(z, y), v.volume.Lane(startZ+z, startY+y)[startX:startX+sizeX])
		}
	}
	return &region, nil
}

// SaveSlice saves a rendered slice as a PNG image
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	return SavePNG(img, filename)
}

// SaveSliceSequence renders and saves every slice along the specified axis
func (v *Viewer) SaveSliceSequence(axis string, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	var maxPos int
	switch axis {
	case "x", "X":
		maxPos = v.volume.Cols
	case "y", "Y":
		maxPos = v.volume.Rows
	case "z", "Z":
		maxPos = v.volume.Planes
	default:
		return fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("zscore_%s_%03d.png", axis, pos))
		if err := v.SaveSlice(img, filename); err != nil {
			return err
		}
	}

	return nil
}
