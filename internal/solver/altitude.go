// Package solver locates the instants where an altitude curve crosses a
// target value.
package solver

import (
	"time"
)

// AltitudeFunc returns altitude in degrees at time t.
type AltitudeFunc func(t time.Time) float64

// Direction selects rising or setting crossings.
type Direction int

const (
	// Rising means altitude increases through the target.
	Rising Direction = iota
	// Setting means altitude decreases through the target.
	Setting
)

// Event is one located crossing.
type Event struct {
	Time time.Time
	OK   bool
}

// Window describes a search: [Start, End] sampled at Steps points, then
// bisected until the bracket is narrower than Tolerance.
type Window struct {
	Start, End time.Time
	Steps      int
	Tolerance  time.Duration
}

// DayWindow is the search used for daily events: the 24 hours starting at
// local midnight of date, sampled every 30 minutes and refined to 30 s.
func DayWindow(date time.Time) Window {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return Window{
		Start:     start,
		End:       start.Add(24 * time.Hour),
		Steps:     49,
		Tolerance: 30 * time.Second,
	}
}

// Crossings scans w once and returns the first rising and the first setting
// crossing of targetDeg.
func Crossings(f AltitudeFunc, w Window, targetDeg float64) (rise, set Event) {
	if !w.Start.Before(w.End) {
		return Event{}, Event{}
	}
	steps := w.Steps
	if steps < 2 {
		steps = 2
	}
	interval := w.End.Sub(w.Start) / time.Duration(steps-1)

	g := func(t time.Time) float64 { return f(t) - targetDeg }

	prevT := w.Start
	prev := g(prevT)
	for i := 1; i < steps && !(rise.OK && set.OK); i++ {
		t := w.Start.Add(time.Duration(i) * interval)
		cur := g(t)

		if !rise.OK && crosses(prev, cur, Rising) {
			rise = bisect(g, prevT, t, prev, Rising, w.Tolerance)
		}
		if !set.OK && crosses(prev, cur, Setting) {
			set = bisect(g, prevT, t, prev, Setting, w.Tolerance)
		}

		prevT, prev = t, cur
	}
	return rise, set
}

func crosses(a, b float64, dir Direction) bool {
	if dir == Rising {
		return a < 0 && b >= 0
	}
	return a > 0 && b <= 0
}

// bisect narrows [a, b] where g changes sign in direction dir. ga is g(a).
func bisect(g func(time.Time) float64, a, b time.Time, ga float64, dir Direction, tol time.Duration) Event {
	if tol <= 0 {
		tol = time.Second
	}
	for b.Sub(a) > tol {
		mid := a.Add(b.Sub(a) / 2)
		gm := g(mid)
		if crosses(ga, gm, dir) {
			b = mid
		} else {
			a, ga = mid, gm
		}
	}
	return Event{Time: a.Add(b.Sub(a) / 2), OK: true}
}
