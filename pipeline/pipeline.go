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

// Package pipeline provides cancellation-aware channel helpers for the
// collector goroutines.
package pipeline

// Send writes value to out unless done closes first. Returns false when the
// send was abandoned.
func Send[T any](done <-chan struct{}, out chan<- T, value T) bool {
	select {
	case <-done:
		return false
	case out <- value:
		return true
	}
}

// OrDone wraps in with a channel that closes as soon as done closes, so
// consumers never block on an abandoned producer.
func OrDone[T any](done <-chan struct{}, in <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for {
			select {
			case <-done:
				return
			case value, ok := <-in:
				if !ok {
					return
				}
				if !Send(done, out, value) {
					return
				}
			}
		}
	}()
	return out
}
