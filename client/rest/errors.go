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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// TransientError reports a request that kept failing with a retryable
// status (429 or 5xx) until the retry budget ran out.
type TransientError struct {
	StatusCode int
	URL        string
	Attempts   int
}

func (s *TransientError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d after %d attempts", s.URL, s.StatusCode, s.Attempts)
}

// PermanentError reports a non-retryable HTTP failure (4xx other than 429,
// or a malformed response). It is never retried.
type PermanentError struct {
	StatusCode int
	URL        string
	Code       string
	Message    string
}

func (s *PermanentError) Error() string {
	if s.Code != "" {
		return fmt.Sprintf("request to %s failed with status %d: %s: %s", s.URL, s.StatusCode, s.Code, s.Message)
	}
	return fmt.Sprintf("request to %s failed with status %d", s.URL, s.StatusCode)
}

// IsNotFound reports whether err wraps a 404 response, i.e. the referenced
// directory object is deleted or inaccessible.
func IsNotFound(err error) bool {
	var permanent *PermanentError
	return errors.As(err, &permanent) && permanent.StatusCode == http.StatusNotFound
}

type graphErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newPermanentError drains the response body for the Graph odata error
// payload. The body is closed.
func newPermanentError(res *http.Response) *PermanentError {
	defer res.Body.Close()

	permanent := &PermanentError{
		StatusCode: res.StatusCode,
		URL:        res.Request.URL.String(),
	}
	var body graphErrorBody
	if data, err := io.ReadAll(io.LimitReader(res.Body, 1<<20)); err == nil {
		if err := json.Unmarshal(data, &body); err == nil {
			permanent.Code = body.Error.Code
			permanent.Message = body.Error.Message
		}
	}
	return permanent
}
