package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Stream is the ordered sequence of obstacle pairs, ascending by x.
// Pairs live in a fixed-capacity ring: the front pair is removed when it
// leaves the screen and a new one is appended behind the tail, so the
// stream length and spacing stay constant.
type Stream struct {
	ring    []ObstaclePair
	head    int // Ring index of the front (leftmost) pair
	count   int
	spacing int
	width   int
	minGapY int
	gapSpan int // Number of possible gap offsets, at least 1
	rng     *rand.Rand
}

// NewStream creates an empty stream for the given configuration.
func NewStream(cfg config.FlappyConfig, rng *rand.Rand) *Stream {
	minGapY, maxGapY := cfg.GapRange()
	span := maxGapY - minGapY
	if span < 1 {
		// rand.Intn panics on n <= 0; collapse to the single offset minGapY
		span = 1
	}

	return &Stream{
		ring:    make([]ObstaclePair, cfg.Obstacles.Lookahead),
		spacing: cfg.Obstacles.Spacing,
		width:   cfg.Obstacles.Width,
		minGapY: minGapY,
		gapSpan: span,
		rng:     rng,
	}
}

// Fill clears the stream and spawns a full lookahead starting at startX.
func (s *Stream) Fill(startX int) {
	s.head = 0
	s.count = 0
	for i := 0; i < len(s.ring); i++ {
		s.spawn(startX + i*s.spacing)
	}
}

// Len returns the number of pairs in the stream.
func (s *Stream) Len() int {
	return s.count
}

// At returns a pointer to the i-th pair in spatial order (0 = leftmost).
func (s *Stream) At(i int) *ObstaclePair {
	return &s.ring[(s.head+i)%len(s.ring)]
}

// Pairs returns a copy of the pairs in spatial order.
func (s *Stream) Pairs() []ObstaclePair {
	out := make([]ObstaclePair, s.count)
	for i := range out {
		out[i] = *s.At(i)
	}
	return out
}

// Advance scrolls every pair left by speed and recycles the front pair once
// its right edge has passed x = 0. At most one pair is recycled per call.
// Returns true if a pair was recycled.
func (s *Stream) Advance(speed int) bool {
	for i := 0; i < s.count; i++ {
		s.At(i).X -= speed
	}

	if s.count == 0 || s.At(0).X+s.width >= 0 {
		return false
	}

	tailX := s.At(s.count - 1).X
	s.popFront()
	s.spawn(tailX + s.spacing)
	return true
}

// popFront removes the leftmost pair.
func (s *Stream) popFront() {
	s.head = (s.head + 1) % len(s.ring)
	s.count--
}

// spawn appends a pair with a fresh random gap at x.
func (s *Stream) spawn(x int) {
	if s.count == len(s.ring) {
		return
	}
	idx := (s.head + s.count) % len(s.ring)
	s.ring[idx] = ObstaclePair{
		X:    x,
		GapY: s.randomGapY(),
	}
	s.count++
}

// randomGapY picks a gap offset uniformly from [minGapY, minGapY+gapSpan).
func (s *Stream) randomGapY() int {
	return s.minGapY + s.rng.Intn(s.gapSpan)
}
