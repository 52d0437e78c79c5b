package portfolio

import "sync/atomic"

// Source serves the current portfolio and its rendered context. It is
// safe for concurrent use; Set swaps both at once.
type Source struct {
	state atomic.Pointer[snapshot]
}

type snapshot struct {
	portfolio *Portfolio
	context   string
}

func NewSource(p *Portfolio) *Source {
	s := &Source{}
	s.Set(p)
	return s
}

func (s *Source) Set(p *Portfolio) {
	s.state.Store(&snapshot{portfolio: p, context: p.Context()})
}

func (s *Source) Portfolio() *Portfolio {
	return s.state.Load().portfolio
}

func (s *Source) Context() string {
	return s.state.Load().context
}
