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

package query

import (
	"fmt"
	"net/url"
	"strings"
)

// GraphParams models the OData query options the audit uses.
type GraphParams struct {
	Select []string
	Filter string
	Top    int
	Count  bool
}

func (s GraphParams) AsValues() url.Values {
	params := url.Values{}
	if len(s.Select) > 0 {
		params.Set("$select", strings.Join(s.Select, ","))
	}
	if s.Filter != "" {
		params.Set("$filter", s.Filter)
	}
	if s.Top > 0 {
		params.Set("$top", fmt.Sprintf("%d", s.Top))
	}
	if s.Count {
		params.Set("$count", "true")
	}
	return params
}

// InFilter renders an OData `id in (...)` clause for bulk lookups. Single
// quotes in ids are doubled per OData string literal escaping.
func InFilter(property string, values []string) string {
	quoted := make([]string, len(values))
	for i, value := range values {
		quoted[i] = "'" + strings.ReplaceAll(value, "'", "''") + "'"
	}
	return fmt.Sprintf("%s in (%s)", property, strings.Join(quoted, ","))
}
