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

import (
	"fmt"
	"strings"

	"github.com/consenthound/consenthound/enums"
)

// Verdict is the classification of one finding's permission list.
type Verdict struct {
	// RiskyItems are the matched items in original order, deduplicated.
	RiskyItems []string

	// Reasons is the ordered reason set; TenantWideConsent always sorts
	// first when present.
	Reasons []enums.RiskReason

	// Notes is a human-readable account of each triggered reason.
	Notes string
}

// Classify is a pure function: identical inputs always produce identical
// verdicts. Tenant-wide consent flags the finding regardless of content;
// each item is matched against the rules independently and accumulates
// into RiskyItems.
func Classify(items []string, consentType enums.ConsentType, rules []Rule, matchReason enums.RiskReason) Verdict {
	var (
		verdict Verdict
		notes   []string
		seen    = map[string]struct{}{}
	)

	if consentType == enums.ConsentTypeAllPrincipals {
		verdict.Reasons = append(verdict.Reasons, enums.RiskReasonTenantWideConsent)
		notes = append(notes, "tenant-wide admin consent applies to all principals")
	}

	for _, item := range items {
		if item == "" {
			continue
		}
		if !matchesAny(rules, item) {
			continue
		}
		key := strings.ToLower(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		verdict.RiskyItems = append(verdict.RiskyItems, item)
	}

	if len(verdict.RiskyItems) > 0 {
		verdict.Reasons = append(verdict.Reasons, matchReason)
		label := "risky scopes"
		if matchReason == enums.RiskReasonRiskyGraphAppRole {
			label = "risky app roles"
		}
		notes = append(notes, fmt.Sprintf("%s: %s", label, strings.Join(verdict.RiskyItems, ", ")))
	}

	verdict.Notes = strings.Join(notes, "; ")
	return verdict
}
