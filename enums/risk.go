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

package enums

import "strings"

// RiskReason names why a finding was flagged. A finding may carry several
// reasons; JoinRiskReasons renders the set in a fixed order so report output
// stays stable.
type RiskReason string

const (
	RiskReasonNone              RiskReason = "None"
	RiskReasonTenantWideConsent RiskReason = "TenantWideConsent"
	RiskReasonRiskyScope        RiskReason = "RiskyScope"
	RiskReasonRiskyGraphAppRole RiskReason = "RiskyGraphAppRole"
)

func (s RiskReason) String() string {
	return string(s)
}

// JoinRiskReasons renders a reason set as a single "+"-joined string. An
// empty set renders as None.
func JoinRiskReasons(reasons []RiskReason) string {
	if len(reasons) == 0 {
		return string(RiskReasonNone)
	}
	parts := make([]string, len(reasons))
	for i, r := range reasons {
		parts[i] = string(r)
	}
	return strings.Join(parts, "+")
}
