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

package panicrecovery

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/go-logr/logr"
)

var panicChan = make(chan error, 8)

// PanicRecovery converts a panic in a collector goroutine into an error on
// the shared panic channel instead of crashing the process. Must be deferred.
func PanicRecovery() {
	if recovered := recover(); recovered != nil {
		panicChan <- fmt.Errorf("recovered from panic: %v\n%s", recovered, debug.Stack())
	}
}

// HandleBubbledPanic logs bubbled panics and stops the run.
func HandleBubbledPanic(ctx context.Context, stop context.CancelFunc, log logr.Logger) {
	go func() {
		for {
			select {
			case err := <-panicChan:
				log.Error(err, "shutting down due to panic")
				stop()
			case <-ctx.Done():
				return
			}
		}
	}()
}
