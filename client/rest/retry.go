// Copyright (C) 2025 ConsentHound Contributors
//
// This file is part of ConsentHound.
//
// ConsentHound is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ConsentHound is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package rest

import (
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

const (
	// MaxRetries bounds retries after the initial attempt; a request is
	// issued at most MaxRetries+1 times.
	MaxRetries = 5

	// DefaultRetryBase seeds the exponential backoff schedule.
	DefaultRetryBase = 2 * time.Second

	maxBackoff    = 30 * time.Second
	maxRetryAfter = 60 * time.Second
)

// Backoff returns base * 2^attempt with up to 25% positive jitter, capped
// at maxBackoff.
func Backoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		base = DefaultRetryBase
	}
	delay := base << uint(attempt)
	if delay > maxBackoff || delay <= 0 {
		delay = maxBackoff
	}
	jitter := time.Duration(rand.Int63n(int64(delay)/4 + 1))
	if delay+jitter > maxBackoff {
		return maxBackoff
	}
	return delay + jitter
}

// retryAfter honors a server-supplied Retry-After header, capped so a
// misbehaving server cannot park the run. Returns false when absent or
// unparseable.
func retryAfter(res *http.Response) (time.Duration, bool) {
	header := res.Header.Get("Retry-After")
	if header == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
		delay := time.Duration(seconds) * time.Second
		if delay > maxRetryAfter {
			delay = maxRetryAfter
		}
		return delay, true
	}
	if at, err := http.ParseTime(header); err == nil {
		delay := time.Until(at)
		if delay < 0 {
			delay = 0
		}
		if delay > maxRetryAfter {
			delay = maxRetryAfter
		}
		return delay, true
	}
	return 0, false
}
