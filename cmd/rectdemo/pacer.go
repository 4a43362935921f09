package main

import "time"

// framePacer caps the frame rate when vsync is off.
type framePacer struct {
	interval time.Duration
	next     time.Time
	sleep    func(time.Duration)
	now      func() time.Time
}

func newFramePacer(interval time.Duration) *framePacer {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &framePacer{
		interval: interval,
		next:     time.Now().Add(interval),
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// wait blocks until the next frame is due. A late frame starts the next
// interval from now instead of trying to catch up.
func (p *framePacer) wait() {
	now := p.now()
	if d := p.next.Sub(now); d > 0 {
		p.sleep(d)
		p.next = p.next.Add(p.interval)
		return
	}
	p.next = now.Add(p.interval)
}
