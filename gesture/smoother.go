package gesture

// Smoother is a majority-vote filter over the most recent non-None gestures.
type Smoother struct {
	buf      []Gesture
	head     int // index of the oldest sample
	n        int
	majority float64
}

// NewSmoother creates a window of the given capacity. majority is the share
// of the full window the mode must strictly exceed.
func NewSmoother(window int, majority float64) *Smoother {
	if window < 1 {
		window = 1
	}
	return &Smoother{
		buf:      make([]Gesture, window),
		majority: majority,
	}
}

// Push records a sample. None is ignored and evicts nothing.
func (s *Smoother) Push(g Gesture) {
	if g == None || g >= numGestures {
		return
	}
	w := len(s.buf)
	if s.n < w {
		s.buf[(s.head+s.n)%w] = g
		s.n++
		return
	}
	s.buf[s.head] = g
	s.head = (s.head + 1) % w
}

// Len returns the number of buffered samples.
func (s *Smoother) Len() int {
	return s.n
}

// Reset drops all history.
func (s *Smoother) Reset() {
	s.head = 0
	s.n = 0
}

// Smoothed returns the mode of the window, or None when there are fewer than
// half a window of samples or the mode does not clear the majority share.
// Ties go to the value that reached the top count first in arrival order.
func (s *Smoother) Smoothed() Gesture {
	w := len(s.buf)
	if float64(s.n) < float64(w)/2 {
		return None
	}

	var counts [numGestures]int
	best, top := None, 0
	for i := 0; i < s.n; i++ {
		g := s.buf[(s.head+i)%w]
		counts[g]++
		if counts[g] > top {
			top = counts[g]
			best = g
		}
	}

	if float64(top) <= s.majority*float64(w) {
		return None
	}
	return best
}
