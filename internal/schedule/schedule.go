// Package schedule gates publishing to a small set of local hours.
//
// The process is invoked far more often than it should act (typically
// hourly by an external scheduler); the gate converts each invocation
// instant to a fixed IANA timezone and only lets runs through when the
// local hour is in the allow-set. Recomputing through the zone rules on
// every call keeps the schedule correct across daylight-saving shifts.
package schedule

import (
	"fmt"
	"time"
)

type Gate struct {
	loc   *time.Location
	hours map[int]bool
}

// NewGate builds a gate for the given IANA zone name and allowed local hours.
func NewGate(timezone string, hours []int) (*Gate, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	allowed := make(map[int]bool, len(hours))
	for _, h := range hours {
		allowed[h] = true
	}

	return &Gate{loc: loc, hours: allowed}, nil
}

// Allows reports whether a run starting at t may publish.
func (g *Gate) Allows(t time.Time) bool {
	return g.hours[t.In(g.loc).Hour()]
}

// LocalTime returns t in the gate's timezone, for logging.
func (g *Gate) LocalTime(t time.Time) time.Time {
	return t.In(g.loc)
}
