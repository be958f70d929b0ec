package analysis

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"imgal/internal/models"
	"imgal/pkg/colocalization"
	"imgal/pkg/statistics"
	"imgal/pkg/visualization"
)

// Output file names
const (
	zScoresFile = "zscores.bin"
	pValuesFile = "pvalues.bin"
	heatmapFile = "zscore_heatmap.png"
	heatmapDir  = "zscore_heatmaps"
	summaryFile = "summary.yaml"
)

// summarize fills in the summary statistics of the z-scores
func (a *Analyzer) summarize() {
	z := a.ZScores()
	a.summary.ChannelA = *a.channelA
	a.summary.ChannelB = *a.channelB
	a.summary.Pixels = len(z)
	a.summary.ZScores = zScoreStats(z)

	if a.params.PValues {
		a.summary.SignificanceLevel = a.params.SignificanceLevel
		for _, significant := range colocalization.Significant(z, a.params.SignificanceLevel) {
			if significant {
				a.summary.Significant++
			}
		}
	}
}

// zScoreStats computes descriptive statistics of z
func zScoreStats(z []float64) models.ZScoreStats {
	var s models.ZScoreStats
	if len(z) == 0 {
		return s
	}

	s.Mean, s.StdDev = stat.MeanStdDev(z, nil)
	s.Min, s.Max = statistics.MinMax(z)

	sorted := slices.Clone(z)
	slices.Sort(sorted)
	for i, p := range []float64{0.25, 0.5, 0.75} {
		s.Quartiles[i] = stat.Quantile(p, stat.Empirical, sorted, nil)
	}

	for _, v := range z {
		switch {
		case v > 0:
			s.Positive++
		case v < 0:
			s.Negative++
		}
	}
	return s
}

// writeOutputs writes the selected result files
func (a *Analyzer) writeOutputs() error {
	if a.params.ZScores {
		path := filepath.Join(a.params.OutputDir, zScoresFile)
		if err := writeFloat64s(path, a.ZScores()); err != nil {
			return err
		}
		a.addOutput(path)

		if p := a.PValues(); p != nil {
			path := filepath.Join(a.params.OutputDir, pValuesFile)
			if err := writeFloat64s(path, p); err != nil {
				return err
			}
			a.addOutput(path)
		}
	}

	if a.params.Heatmap {
		if err := a.writeHeatmaps(); err != nil {
			return err
		}
	}
	return nil
}

// writeHeatmaps renders the z-scores, one image for 2D and one per plane for 3D
func (a *Analyzer) writeHeatmaps() error {
	if a.z3D != nil {
		dir := filepath.Join(a.params.OutputDir, heatmapDir)
		viewer := visualization.NewViewer(a.z3D, a.params.HeatmapLimit)
		if err := viewer.SaveSliceSequence("z", dir); err != nil {
			return fmt.Errorf("failed to save heatmap slices: %w", err)
		}
		a.addOutput(dir)
		return nil
	}

	path := filepath.Join(a.params.OutputDir, heatmapFile)
	if err := visualization.SavePNG(visualization.Heatmap(a.z2D, a.params.HeatmapLimit), path); err != nil {
		return err
	}
	a.addOutput(path)
	return nil
}

// writeSummary saves the run summary as YAML
func (a *Analyzer) writeSummary() error {
	path := filepath.Join(a.params.OutputDir, summaryFile)
	a.addOutput(path)

	data, err := yaml.Marshal(&a.summary)
	if err != nil {
		return fmt.Errorf("error marshaling summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing summary: %w", err)
	}
	return nil
}

func (a *Analyzer) addOutput(path string) {
	a.summary.Outputs = append(a.summary.Outputs, path)
}

// writeFloat64s saves values as raw little-endian float64
func writeFloat64s(path string, values []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create binary file: %w", err)
	}

	w := bufio.NewWriter(file)
	if err := binary.Write(w, binary.LittleEndian, values); err != nil {
		file.Close()
		return fmt.Errorf("failed to write binary data: %w", err)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write binary data: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close binary file: %w", err)
	}
	return nil
}

// ReadFloat64s loads a file written as raw little-endian float64
func ReadFloat64s(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("%s is %d bytes, not a whole number of float64 values", path, len(data))
	}

	values := make([]float64, len(data)/8)
	if _, err := binary.Decode(data, binary.LittleEndian, values); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return values, nil
}
