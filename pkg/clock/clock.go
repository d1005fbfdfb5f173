// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package clock provides the time source used for content timestamps.
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/taibuivan/grimoire/pkg/clock Clock

// Clock provides time functionality.
type Clock interface {
	Now() time.Time
}

// Real implements Clock using the system time, truncated to microseconds so
// values survive a round trip through PostgreSQL timestamptz unchanged.
type Real struct{}

// Now returns the current UTC time.
func (c *Real) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// New returns a new real clock.
func New() Clock {
	return &Real{}
}
