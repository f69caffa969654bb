package main

import (
	"context"
	"time"
)

// LookupFunc looks up one chain and reports whether it was found.
type LookupFunc func(channel, locate int) bool

// Measurement is the result of timing one LookupFunc.
type Measurement struct {
	Name    string
	Lookups int64
	Hits    int64
	Elapsed time.Duration
}

// NsPerLookup returns the mean cost of a lookup in nanoseconds.
func (m Measurement) NsPerLookup() float64 {
	if m.Lookups == 0 {
		return 0
	}
	return float64(m.Elapsed.Nanoseconds()) / float64(m.Lookups)
}

// Measure sweeps every channel and locate below the given bounds with lookup,
// repeating full sweeps until ctx is done. At least one sweep always runs.
func Measure(ctx context.Context, name string, lookup LookupFunc, channels, locates int) Measurement {
	m := Measurement{Name: name}
	start := time.Now()

Loop:
	for {
		for locate := 0; locate < locates; locate++ {
			for channel := 0; channel < channels; channel++ {
				if lookup(channel, locate) {
					m.Hits++
				}
				m.Lookups++
			}
		}

		select {
		case <-ctx.Done():
			break Loop
		default:
		}
	}

	m.Elapsed = time.Since(start)
	return m
}
