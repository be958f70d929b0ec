package models

// Channel describes one fluorescence channel loaded for analysis
type Channel struct {
	// Name identifies the channel in logs and summaries ("A" or "B")
	Name string `yaml:"name"`

	// Path is the image file (2D) or slice directory (3D) the channel was read from
	Path string `yaml:"path"`

	// Width, Height and Depth are the dimensions in pixels; Depth is 1 for 2D
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Depth  int `yaml:"depth"`

	// Slices lists the slice files of a 3D channel in stack order
	Slices []string `yaml:"slices,omitempty"`

	// Threshold is the intensity threshold applied to the channel
	Threshold float64 `yaml:"threshold"`

	// ThresholdMethod records how Threshold was chosen ("manual" or "otsu")
	ThresholdMethod string `yaml:"thresholdMethod"`
}

// Shape returns the channel dimensions as (depth, height, width)
func (c *Channel) Shape() []int {
	return []int{c.Depth, c.Height, c.Width}
}
