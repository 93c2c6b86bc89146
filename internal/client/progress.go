package client

import (
	"sync"
	"time"
)

// Simulated progress defaults.
const (
	DefaultProgressInterval = 200 * time.Millisecond
	progressStep            = 10
	progressCap             = 90
	progressDone            = 100
)

// SimulatedProgress is a cosmetic progress counter shown while an upload is
// in flight. It is NOT tied to bytes sent: it climbs by 10 every interval,
// stops at 90 and jumps to 100 when Finish is called.
type SimulatedProgress struct {
	onChange func(int)

	mu    sync.Mutex
	value int
	stop  chan struct{}
	done  chan struct{}
}

// StartSimulatedProgress reports 0 immediately and starts ticking.
func StartSimulatedProgress(interval time.Duration, onChange func(int)) *SimulatedProgress {
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	if onChange == nil {
		onChange = func(int) {}
	}
	p := &SimulatedProgress{
		onChange: onChange,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	onChange(0)
	go p.run(interval)
	return p
}

func (p *SimulatedProgress) run(interval time.Duration) {
	defer close(p.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.mu.Lock()
			if p.value >= progressCap {
				p.mu.Unlock()
				return
			}
			p.value += progressStep
			v := p.value
			p.mu.Unlock()
			p.onChange(v)
		}
	}
}

// Value returns the last reported value.
func (p *SimulatedProgress) Value() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Finish stops the ticker and snaps to 100. Safe to call more than once.
func (p *SimulatedProgress) Finish() {
	p.mu.Lock()
	select {
	case <-p.stop:
		p.mu.Unlock()
		return
	default:
		close(p.stop)
	}
	p.mu.Unlock()

	<-p.done

	p.mu.Lock()
	p.value = progressDone
	p.mu.Unlock()
	p.onChange(progressDone)
}
