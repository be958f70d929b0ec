package models

import "time"

// ZScoreStats holds descriptive statistics of a z-score map
type ZScoreStats struct {
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stdDev"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`

	// Quartiles are the 25th, 50th and 75th percentiles
	Quartiles [3]float64 `yaml:"quartiles,flow"`

	// Positive and Negative count colocalized and anti-colocalized pixels
	Positive int `yaml:"positive"`
	Negative int `yaml:"negative"`
}

// Summary is the record of one colocalization run written to summary.yaml
type Summary struct {
	// RunID uniquely identifies the run
	RunID string `yaml:"runId"`

	StartedAt time.Time     `yaml:"startedAt"`
	Duration  time.Duration `yaml:"duration"`

	// Mode is "2d" or "3d"
	Mode    string `yaml:"mode"`
	Workers int    `yaml:"workers"`

	ChannelA Channel `yaml:"channelA"`
	ChannelB Channel `yaml:"channelB"`

	// Pixels is the number of pixels (or voxels) analyzed
	Pixels int `yaml:"pixels"`

	ZScores ZScoreStats `yaml:"zScores"`

	// SignificanceLevel and Significant are set when p-values were computed
	SignificanceLevel float64 `yaml:"significanceLevel,omitempty"`
	Significant       int     `yaml:"significant,omitempty"`

	// Outputs lists the files written by the run
	Outputs []string `yaml:"outputs"`
}
