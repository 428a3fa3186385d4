// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glfwwin

import (
	"context"
	"sync"

	"github.com/gogpu/framehost"
)

// pump turns callback-driven platform events into the pull-based
// framehost.EventSource stream:
//
//	poll -> queued events... -> EventsCleared -> RedrawRequested (if asked) -> poll
//
// When there is nothing to deliver and no redraw is pending it blocks in
// wait until the platform wakes it.
type pump struct {
	window framehost.WindowID
	poll   func()
	wait   func()

	mu      sync.Mutex
	queue   []framehost.Event
	cleared bool
	redraw  bool
	closed  bool
}

func (p *pump) push(ev framehost.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, ev)
}

func (p *pump) requestRedraw() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.redraw = true
}

func (p *pump) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.queue = nil
}

// next returns the next event. poll and wait run without the lock held
// since platform callbacks push into the queue from inside them.
func (p *pump) next(ctx context.Context) (framehost.Event, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.mu.Lock()
		switch {
		case p.closed:
			p.mu.Unlock()
			return nil, framehost.ErrEventsClosed
		case len(p.queue) > 0:
			ev := p.queue[0]
			p.queue[0] = nil
			p.queue = p.queue[1:]
			p.mu.Unlock()
			return ev, nil
		case p.redraw:
			p.redraw = false
			p.cleared = false
			p.mu.Unlock()
			return framehost.RedrawRequested{Window: p.window}, nil
		case !p.cleared:
			p.mu.Unlock()
			p.poll()
			p.mu.Lock()
			if len(p.queue) == 0 && !p.closed {
				p.cleared = true
				p.mu.Unlock()
				return framehost.EventsCleared{}, nil
			}
			p.mu.Unlock()
		default:
			p.mu.Unlock()
			p.wait()
			p.mu.Lock()
			p.cleared = false
			p.mu.Unlock()
		}
	}
}
