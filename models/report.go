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

package models

import (
	"time"

	"github.com/consenthound/consenthound/enums"
)

// Report is the JSON output document: run metadata, summary counts and the
// ordered findings. Only Metadata carries run-varying data (the timestamp);
// Summary and Findings are byte-stable for identical input.
type Report struct {
	Metadata ReportMetadata `json:"metadata"`
	Summary  ReportSummary  `json:"summary"`
	Findings []Finding      `json:"findings"`
}

type ReportMetadata struct {
	ToolName        string `json:"toolName"`
	ToolVersion     string `json:"toolVersion"`
	TenantId        string `json:"tenantId,omitempty"`
	RunTimestampUtc string `json:"runTimestampUtc"`
}

type ReportSummary struct {
	TotalFindings           int `json:"totalFindings"`
	RiskyFindings           int `json:"riskyFindings"`
	TotalDelegatedGrants    int `json:"totalDelegatedGrants"`
	RiskyDelegatedGrants    int `json:"riskyDelegatedGrants"`
	TotalAppRoleAssignments int `json:"totalAppRoleAssignments"`
	RiskyAppRoleAssignments int `json:"riskyAppRoleAssignments"`

	// CountsByReason keys are RiskReason strings; json marshaling sorts
	// map keys, keeping the block deterministic.
	CountsByReason map[string]int `json:"countsByReason"`
}

// NewReport assembles the output document from an ordered finding list.
func NewReport(findings []Finding, tenantId, toolName, toolVersion string, generatedAt time.Time) Report {
	summary := ReportSummary{CountsByReason: map[string]int{}}
	for _, finding := range findings {
		summary.TotalFindings++
		if finding.Risky() {
			summary.RiskyFindings++
		}
		switch finding.FindingType {
		case enums.FindingDelegatedGrant:
			summary.TotalDelegatedGrants++
			if finding.Risky() {
				summary.RiskyDelegatedGrants++
			}
		case enums.FindingAppRoleAssignment:
			summary.TotalAppRoleAssignments++
			if finding.Risky() {
				summary.RiskyAppRoleAssignments++
			}
		}
		for _, reason := range finding.RiskReasons {
			summary.CountsByReason[reason.String()]++
		}
	}

	if findings == nil {
		findings = []Finding{}
	}

	return Report{
		Metadata: ReportMetadata{
			ToolName:        toolName,
			ToolVersion:     toolVersion,
			TenantId:        tenantId,
			RunTimestampUtc: generatedAt.UTC().Format(time.RFC3339),
		},
		Summary:  summary,
		Findings: findings,
	}
}
