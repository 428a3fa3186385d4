// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package headless

import (
	"context"
	"sync"

	"github.com/gogpu/framehost"
)

// Events is a scripted framehost.EventSource.
//
// Queued events are delivered in order. When the queue is empty and a
// frame budget remains (see Pump), NextEvent reports EventsCleared so the
// driver requests a redraw; every RedrawRequested delivered spends one
// frame of the budget. Once the queue is empty and the budget is spent,
// NextEvent returns framehost.ErrEventsClosed.
type Events struct {
	mu     sync.Mutex
	queue  []framehost.Event
	budget int
}

// NewEvents returns an empty queue.
func NewEvents() *Events {
	return &Events{}
}

// Push appends events to the queue.
func (q *Events) Push(evs ...framehost.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queue = append(q.queue, evs...)
}

// Pump adds frames to the redraw budget.
func (q *Events) Pump(frames int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.budget += frames
}

// Len returns the number of queued events.
func (q *Events) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}

// NextEvent implements framehost.EventSource.
func (q *Events) NextEvent(ctx context.Context) (framehost.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.queue) > 0 {
		ev := q.queue[0]
		q.queue[0] = nil
		q.queue = q.queue[1:]
		if _, ok := ev.(framehost.RedrawRequested); ok && q.budget > 0 {
			q.budget--
		}
		return ev, nil
	}
	if q.budget > 0 {
		return framehost.EventsCleared{}, nil
	}
	return nil, framehost.ErrEventsClosed
}

var _ framehost.EventSource = (*Events)(nil)
