// Package analysis runs a complete colocalization analysis of two channels:
// loading the images, choosing thresholds, running SACA and writing the
// z-score maps, heatmaps and a run summary.
package analysis

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"imgal/internal/models"
	"imgal/pkg/colocalization"
	"imgal/pkg/config"
	"imgal/pkg/grid"
	"imgal/pkg/threshold"
)

// Params holds the analysis parameters. These parameters control the
// input/output and processing configuration.
type Params struct {
	// ChannelA and ChannelB are image files (2D) or slice directories (3D)
	ChannelA string
	ChannelB string

	// OutputDir receives every output file
	OutputDir string

	// Mode is config.Mode2D or config.Mode3D
	Mode string

	// Workers specifies how many goroutines process pixels in parallel
	Workers int

	// ThresholdA and ThresholdB are used when AutoThreshold is manual
	ThresholdA float64
	ThresholdB float64

	// AutoThreshold is config.ThresholdManual or config.ThresholdOtsu
	AutoThreshold string

	// HistogramBins is the histogram size of automatic thresholds
	HistogramBins int

	// PValues enables the p-value map and the significant pixel count
	PValues           bool
	SignificanceLevel float64

	// Output selection
	Heatmap      bool
	HeatmapLimit float64
	ZScores      bool
	Summary      bool
}

// ParamsFromConfig builds analysis parameters from a loaded configuration
func ParamsFromConfig(cfg *config.Config, channelA, channelB string) *Params {
	return &Params{
		ChannelA:          channelA,
		ChannelB:          channelB,
		OutputDir:         cfg.Output.Directory,
		Mode:              cfg.Processing.Mode,
		Workers:           cfg.Processing.Workers,
		ThresholdA:        cfg.Colocalization.ThresholdA,
		ThresholdB:        cfg.Colocalization.ThresholdB,
		AutoThreshold:     cfg.Colocalization.AutoThreshold,
		HistogramBins:     cfg.Colocalization.HistogramBins,
		PValues:           cfg.Colocalization.PValues,
		SignificanceLevel: cfg.Colocalization.SignificanceLevel,
		Heatmap:           cfg.Output.Heatmap,
		HeatmapLimit:      cfg.Output.HeatmapLimit,
		ZScores:           cfg.Output.ZScores,
		Summary:           cfg.Output.Summary,
	}
}

// Analyzer handles one colocalization run.
//
// The analysis consists of several steps:
// 1. Loading both channels
// 2. Resolving the intensity thresholds
// 3. Running SACA
// 4. Computing p-values and summary statistics
// 5. Writing the outputs
type Analyzer struct {
	params *Params
	logger zerolog.Logger

	// channel metadata
	channelA *models.Channel
	channelB *models.Channel

	// 2D inputs and results
	imageA grid.Grid2[uint16]
	imageB grid.Grid2[uint16]
	z2D    *mat.Dense
	p2D    *mat.Dense

	// 3D inputs and results
	stackA grid.Grid3[uint16]
	stackB grid.Grid3[uint16]
	z3D    *grid.Grid3[float64]
	p3D    *grid.Grid3[float64]

	summary models.Summary
}

// NewAnalyzer creates a new analyzer instance with the provided parameters
func NewAnalyzer(params *Params, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		params: params,
		logger: logger.With().Str("component", "analysis").Logger(),
	}
}

// Process runs the complete analysis pipeline
func (a *Analyzer) Process() error {
	started := time.Now()
	a.summary = models.Summary{
		RunID:     uuid.NewString(),
		StartedAt: started,
		Mode:      a.params.Mode,
		Workers:   a.params.Workers,
	}
	log := a.logger.With().Str("run_id", a.summary.RunID).Logger()

	if err := os.MkdirAll(a.params.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Step 1: Load both channels
	log.Info().Str("mode", a.params.Mode).Msg("Step 1: Loading channels")
	if err := a.loadChannels(); err != nil {
		return fmt.Errorf("failed to load channels: %w", err)
	}
	log.Info().
		Ints("shape", a.channelA.Shape()).
		Msg("Loaded channels")

	// Step 2: Resolve thresholds
	log.Info().Str("method", a.params.AutoThreshold).Msg("Step 2: Resolving thresholds")
	a.resolveThresholds()
	log.Info().
		Float64("threshold_a", a.channelA.Threshold).
		Float64("threshold_b", a.channelB.Threshold).
		Msg("Thresholds resolved")

	// Step 3: Run SACA
	log.Info().Int("workers", a.params.Workers).Msg("Step 3: Running spatially adaptive colocalization analysis")
	sacaStart := time.Now()
	if err := a.runSACA(log); err != nil {
		return fmt.Errorf("failed to run colocalization: %w", err)
	}
	log.Info().Dur("elapsed", time.Since(sacaStart)).Msg("Colocalization complete")

	// Step 4: p-values and statistics
	log.Info().Msg("Step 4: Summarizing z-scores")
	a.summarize()

	// Step 5: Write outputs
	log.Info().Str("dir", a.params.OutputDir).Msg("Step 5: Writing outputs")
	if err := a.writeOutputs(); err != nil {
		return fmt.Errorf("failed to write outputs: %w", err)
	}

	a.summary.Duration = time.Since(started)
	if a.params.Summary {
		if err := a.writeSummary(); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	log.Info().
		Dur("duration", a.summary.Duration).
		Int("positive", a.summary.ZScores.Positive).
		Int("negative", a.summary.ZScores.Negative).
		Msg("Analysis complete")
	return nil
}

// loadChannels reads both channels and checks that their shapes agree
func (a *Analyzer) loadChannels() error {
	var err error
	switch a.params.Mode {
	case config.Mode2D:
		if a.imageA, a.channelA, err = loadChannel2D("A", a.params.ChannelA); err != nil {
			return err
		}
		if a.imageB, a.channelB, err = loadChannel2D("B", a.params.ChannelB); err != nil {
			return err
		}
	case config.Mode3D:
		if a.stackA, a.channelA, err = loadChannel3D("A", a.params.ChannelA); err != nil {
			return err
		}
		if a.stackB, a.channelB, err = loadChannel3D("B", a.params.ChannelB); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown mode %q", a.params.Mode)
	}

	if !grid.SameShape(a.channelA.Shape(), a.channelB.Shape()) {
		return fmt.Errorf("channel shapes differ: A is %v, B is %v", a.channelA.Shape(), a.channelB.Shape())
	}
	return nil
}

// resolveThresholds sets the channel thresholds, from the parameters or Otsu's
// method
func (a *Analyzer) resolveThresholds() {
	a.channelA.ThresholdMethod = a.params.AutoThreshold
	a.channelB.ThresholdMethod = a.params.AutoThreshold

	if a.params.AutoThreshold != config.ThresholdOtsu {
		a.channelA.Threshold = a.params.ThresholdA
		a.channelB.Threshold = a.params.ThresholdB
		return
	}

	dataA, dataB := a.imageA.Data, a.imageB.Data
	if a.params.Mode == config.Mode3D {
		dataA, dataB = a.stackA.Data, a.stackB.Data
	}
	a.channelA.Threshold = threshold.Otsu(dataA, a.params.HistogramBins)
	a.channelB.Threshold = threshold.Otsu(dataB, a.params.HistogramBins)
}

// runSACA computes the z-score map, and the p-value map when enabled
func (a *Analyzer) runSACA(log zerolog.Logger) error {
	opts := []colocalization.Option{
		colocalization.WithWorkers(a.params.Workers),
		colocalization.WithLogger(log.With().Str("component", "saca").Logger()),
	}
	thA, thB := a.channelA.Threshold, a.channelB.Threshold

	var err error
	if a.params.Mode == config.Mode3D {
		a.z3D, err = colocalization.SACA3D(a.stackA.Float64(), a.stackB.Float64(), thA, thB, opts...)
		if err != nil {
			return err
		}
		if a.params.PValues {
			a.p3D = colocalization.PValues3D(a.z3D)
		}
		return nil
	}

	a.z2D, err = colocalization.SACA2D(a.imageA.Float64(), a.imageB.Float64(), thA, thB, opts...)
	if err != nil {
		return err
	}
	if a.params.PValues {
		a.p2D = colocalization.PValues(a.z2D)
	}
	return nil
}

// ZScores returns the flat z-scores of the run in row-major order
func (a *Analyzer) ZScores() []float64 {
	if a.z3D != nil {
		return a.z3D.Data
	}
	if a.z2D != nil {
		return a.z2D.RawMatrix().Data
	}
	return nil
}

// ZScoreMap returns the 2D z-score map, nil for a 3D run
func (a *Analyzer) ZScoreMap() *mat.Dense {
	return a.z2D
}

// ZScoreVolume returns the 3D z-score volume, nil for a 2D run
func (a *Analyzer) ZScoreVolume() *grid.Grid3[float64] {
	return a.z3D
}

// PValues returns the flat p-values of the run, nil when disabled
func (a *Analyzer) PValues() []float64 {
	if a.p3D != nil {
		return a.p3D.Data
	}
	if a.p2D != nil {
		return a.p2D.RawMatrix().Data
	}
	return nil
}

// Summary returns the run summary
func (a *Analyzer) Summary() models.Summary {
	return a.summary
}
