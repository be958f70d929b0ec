package colocalization

// pixelStatus tags whether a pixel is still refined by new iterations.
type pixelStatus uint8

const (
	active pixelStatus = iota
	// frozen pixels failed the stability test and keep their last stable
	// estimate for the rest of the run.
	frozen
)

// pixelState holds the stop-condition bookkeeping of one pixel.
type pixelState struct {
	status          pixelStatus
	checkpointTau   float64
	checkpointSqrtN float64
}

// freeze locks the pixel. Frozen is terminal.
func (p *pixelState) freeze() {
	p.status = frozen
}

// state is the double-buffered per-pixel state of a single SACA run.
//
// During an iteration the old maps are read-only and each pixel writes only its
// own cells of the new maps and the result. commit swaps the buffers wholesale.
// A frozen pixel always has equal old and new values (its new value is reverted
// to the old one when it freezes), so swapping never exposes a stale estimate.
type state struct {
	result   []float64
	newTau   []float64
	newSqrtN []float64
	oldTau   []float64
	oldSqrtN []float64
	pixels   []pixelState
}

func newState(n int) *state {
	s := &state{
		result:   make([]float64, n),
		newTau:   make([]float64, n),
		newSqrtN: make([]float64, n),
		oldTau:   make([]float64, n),
		oldSqrtN: make([]float64, n),
		pixels:   make([]pixelState, n),
	}
	for i := range s.oldSqrtN {
		s.oldSqrtN[i] = 1.0
	}
	return s
}

// commit publishes the iteration just computed as the previous iteration.
func (s *state) commit() {
	s.oldTau, s.newTau = s.newTau, s.oldTau
	s.oldSqrtN, s.newSqrtN = s.newSqrtN, s.oldSqrtN
}

// checkpoint snapshots the last committed (tau, sqrt_n) of every pixel as the
// reference of the stability test. Must be called after commit.
func (s *state) checkpoint() {
	for i := range s.pixels {
		s.pixels[i].checkpointTau = s.oldTau[i]
		s.pixels[i].checkpointSqrtN = s.oldSqrtN[i]
	}
}

func (s *state) frozenCount() int {
	n := 0
	for i := range s.pixels {
		if s.pixels[i].status == frozen {
			n++
		}
	}
	return n
}
