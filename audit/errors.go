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

package audit

import "fmt"

// CollectionError wraps the failure that aborted one audit flow, carrying
// the number of records already yielded before the page fetch failed.
type CollectionError struct {
	Flow    string
	Partial int
	Err     error
}

func (s *CollectionError) Error() string {
	return fmt.Sprintf("auditing %s failed after %d records: %v", s.Flow, s.Partial, s.Err)
}

func (s *CollectionError) Unwrap() error {
	return s.Err
}
