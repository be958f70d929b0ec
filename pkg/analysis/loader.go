package analysis

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "golang.org/x/image/tiff"

	"imgal/internal/models"
	"imgal/pkg/grid"
)

// supportedExtensions lists the image formats registered with image.Decode
var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
}

// loadImage decodes a PNG, JPEG or TIFF image
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}

	return img, nil
}

// imageToGrid converts an image to 16-bit gray intensities
func imageToGrid(img image.Image) grid.Grid2[uint16] {
	bounds := img.Bounds()
	g := grid.NewGrid2[uint16](bounds.Dy(), bounds.Dx())

	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			gray := color.Gray16Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
			g.Set(y, x, gray.Y)
		}
	}

	return g
}

// loadChannel2D reads a single image channel
func loadChannel2D(name, path string) (grid.Grid2[uint16], *models.Channel, error) {
	img, err := loadImage(path)
	if err != nil {
		return grid.Grid2[uint16]{}, nil, fmt.Errorf("failed to load channel %s from %s: %w", name, path, err)
	}

	g := imageToGrid(img)
	channel := &models.Channel{
		Name:   name,
		Path:   path,
		Width:  g.Cols,
		Height: g.Rows,
		Depth:  1,
	}
	return g, channel, nil
}

// listSlices returns the image files of dir sorted by the number in their names
func listSlices(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, entry.Name())
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no images found in %s", dir)
	}

	// Sort by the slice number so that slice_10 follows slice_9
	sort.SliceStable(files, func(i, j int) bool {
		return extractNumber(files[i]) < extractNumber(files[j])
	})

	return files, nil
}

// loadChannel3D reads a directory of slices as one stack
func loadChannel3D(name, dir string) (grid.Grid3[uint16], *models.Channel, error) {
	files, err := listSlices(dir)
	if err != nil {
		return grid.Grid3[uint16]{}, nil, fmt.Errorf("failed to list channel %s slices: %w", name, err)
	}

	var stack grid.Grid3[uint16]
	for i, filename := range files {
		img, err := loadImage(filepath.Join(dir, filename))
		if err != nil {
			return grid.Grid3[uint16]{}, nil, fmt.Errorf("failed to load slice %s of channel %s: %w", filename, name, err)
		}

		slice := imageToGrid(img)
		if i == 0 {
			stack = grid.NewGrid3[uint16](len(files), slice.Rows, slice.Cols)
		} else if slice.Rows != stack.Rows || slice.Cols != stack.Cols {
			return grid.Grid3[uint16]{}, nil, fmt.Errorf("slice %s of channel %s is %dx%d, expected %dx%d",
				filename, name, slice.Cols, slice.Rows, stack.Cols, stack.Rows)
		}
		copy(stack.Data[i*slice.Len():(i+1)*slice.Len()], slice.Data)
	}

	channel := &models.Channel{
		Name:   name,
		Path:   dir,
		Width:  stack.Cols,
		Height: stack.Rows,
		Depth:  stack.Planes,
		Slices: files,
	}
	return stack, channel, nil
}

// extractNumber extracts the last run of digits in a filename, so that a
// channel prefix such as c2_ does not change the slice order
func extractNumber(filename string) int {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	end := strings.LastIndexFunc(base, isDigit)
	if end < 0 {
		return 0
	}
	start := strings.LastIndexFunc(base[:end], func(r rune) bool { return !isDigit(r) }) + 1

	num, err := strconv.Atoi(base[start : end+1])
	if err != nil {
		return 0
	}
	return num
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
