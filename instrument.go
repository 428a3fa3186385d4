// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framehost

// Instrument receives profiling hooks from the driver. Span is called at
// the start of the "update" and "render" phases and returns the function
// that closes the span; FrameMark is called once per rendered frame.
//
// Implementations are called on the event loop goroutine and must not block.
type Instrument interface {
	Span(name string) (end func())
	FrameMark()
}

// nopInstrument is the default Instrument.
type nopInstrument struct{}

func (nopInstrument) Span(string) func() { return func() {} }
func (nopInstrument) FrameMark()         {}
