package catalog

import "time"

// Pacer enforces a minimum interval between outgoing catalog requests. It is
// the only blocking point in a run; requests never overlap, so the remote
// rate limit holds deterministically.
type Pacer struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
	sleep    func(time.Duration)
}

func NewPacer(interval time.Duration) *Pacer {
	return NewPacerWithClock(interval, time.Now, time.Sleep)
}

// NewPacerWithClock exists so tests can substitute a fake clock, and callers
// can substitute a no-op pacer with a zero interval.
func NewPacerWithClock(interval time.Duration, now func() time.Time, sleep func(time.Duration)) *Pacer {
	return &Pacer{interval: interval, now: now, sleep: sleep}
}

// Wait blocks until the configured interval has elapsed since the previous
// request, then records the new request time.
func (p *Pacer) Wait() {
	if p == nil || p.interval <= 0 {
		return
	}
	now := p.now()
	if !p.last.IsZero() {
		if wait := p.interval - now.Sub(p.last); wait > 0 {
			p.sleep(wait)
			now = now.Add(wait)
		}
	}
	p.last = now
}
