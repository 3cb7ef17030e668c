package indicators

import "fmt"

// RollingMean is a streaming trailing-window mean. The sum and the count of
// unknown values in the window are kept incrementally over a ring buffer.
// The mean is known only when the window is full and holds no unknowns.
//
// A window holding one repeated value yields that value exactly, so a run
// of zeros after non-zero values gives 0 rather than the sum's residue.
type RollingMean struct {
	period  int
	window  []Value
	next    int
	filled  int
	sum     float64
	unknown int

	// last is the most recent known value and same the number of
	// consecutive updates equal to it.
	last float64
	same int
}

var _ Indicator = (*RollingMean)(nil)

// NewRollingMean creates a rolling mean over the given period.
func NewRollingMean(period int) *RollingMean {
	if period < 1 {
		period = 1
	}
	return &RollingMean{
		period: period,
		window: make([]Value, period),
	}
}

func (m *RollingMean) Name() string {
	return fmt.Sprintf("MA(%d)", m.period)
}

func (m *RollingMean) Warmup() int {
	return m.period
}

func (m *RollingMean) Reset() {
	clear(m.window)
	m.next = 0
	m.filled = 0
	m.sum = 0
	m.unknown = 0
	m.last = 0
	m.same = 0
}

// Update pushes v into the window, evicting the oldest value once full.
func (m *RollingMean) Update(v Value) {
	if m.filled == m.period {
		m.evict(m.window[m.next])
	} else {
		m.filled++
	}

	m.window[m.next] = v
	if v.IsSome() {
		x := v.Unwrap()
		m.sum += x
		if m.same > 0 && x == m.last {
			m.same++
		} else {
			m.last, m.same = x, 1
		}
	} else {
		m.unknown++
		m.same = 0
	}
	m.next = (m.next + 1) % m.period

	// Drop accumulated rounding error whenever the window is all unknown.
	if m.unknown == m.filled {
		m.sum = 0
	}
}

func (m *RollingMean) evict(old Value) {
	if old.IsSome() {
		m.sum -= old.Unwrap()
		return
	}
	m.unknown--
}

func (m *RollingMean) Ready() bool {
	return m.filled == m.period && m.unknown == 0
}

func (m *RollingMean) Value() Value {
	if !m.Ready() {
		return Unknown()
	}
	if m.same >= m.period {
		return Known(m.last)
	}
	return Known(m.sum / float64(m.period))
}
