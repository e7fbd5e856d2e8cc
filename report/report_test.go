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

package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/consenthound/consenthound/enums"
	"github.com/consenthound/consenthound/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFindings() []models.Finding {
	principal := &models.EntityRef{
		Id:                "u1",
		DisplayName:       "Avery Quinn",
		UserPrincipalName: "avery@contoso.com",
	}
	return []models.Finding{
		{
			FindingType: enums.FindingDelegatedGrant,
			Client:      models.EntityRef{Id: "sp1", AppId: "app1", DisplayName: "Mail Sync, Inc.", PublisherName: "Contoso \"Verified\""},
			Resource:    models.EntityRef{Id: "spr", AppId: "00000003-0000-0000-c000-000000000000", DisplayName: "Microsoft Graph"},
			Principal:   principal,
			ConsentType: enums.ConsentTypePrincipal,
			Scopes:      []string{"Mail.Read", "offline_access"},
			RiskyItems:  []string{"Mail.Read", "offline_access"},
			RiskyCount:  2,
			RiskReasons:     []enums.RiskReason{enums.RiskReasonRiskyScope},
			RiskNotes:       "risky scopes: Mail.Read, offline_access",
			CreatedDateTime: "2024-03-01T08:00:00Z",
			ExpiryTime:      "2024-09-01T08:00:00Z",
		},
		{
			FindingType: enums.FindingAppRoleAssignment,
			Client:      models.EntityRef{Id: "sp2", AppId: "app2", DisplayName: "Automation\nBot"},
			Resource:    models.EntityRef{Id: "spr", AppId: "00000003-0000-0000-c000-000000000000", DisplayName: "Microsoft Graph"},
			ConsentType: enums.ConsentTypeApplication,
			Scopes:      []string{"Directory.ReadWrite.All"},
			RiskyItems:  []string{"Directory.ReadWrite.All"},
			RiskyCount:      1,
			RiskReasons:     []enums.RiskReason{enums.RiskReasonRiskyGraphAppRole},
			CreatedDateTime: "2024-05-20T10:30:00Z",
		},
	}
}

func TestWriteCSVIsByteStable(t *testing.T) {
	findings := sampleFindings()

	var first, second bytes.Buffer
	require.NoError(t, WriteCSV(&first, findings))
	require.NoError(t, WriteCSV(&second, findings))

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestWriteCSVRowsAndEscaping(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleFindings()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])

	delegated := rows[1]
	assert.Equal(t, "DELEGATED_GRANT", delegated[0])
	// Embedded comma and quotes survive the round trip.
	assert.Equal(t, "Mail Sync, Inc.", delegated[1])
	assert.Equal(t, "Contoso \"Verified\"", delegated[4])
	assert.Equal(t, "avery@contoso.com", delegated[8])
	assert.Equal(t, "Mail.Read offline_access", delegated[11])
	assert.Equal(t, "Mail.Read,offline_access", delegated[12])
	assert.Equal(t, "2", delegated[13])
	assert.Equal(t, "RiskyScope", delegated[14])
	assert.Equal(t, "2024-03-01T08:00:00Z", delegated[16])
	assert.Equal(t, "2024-09-01T08:00:00Z", delegated[17])

	assignment := rows[2]
	assert.Equal(t, "APP_ROLE_ASSIGNMENT", assignment[0])
	// Embedded newline survives too.
	assert.Equal(t, "Automation\nBot", assignment[1])
	// App role assignments have no delegated principal.
	assert.Empty(t, assignment[7])
	assert.Empty(t, assignment[8])
	assert.Equal(t, "Application", assignment[10])
	assert.Equal(t, "RiskyGraphAppRole", assignment[14])
	assert.Equal(t, "2024-05-20T10:30:00Z", assignment[16])
	// Assignments carry no expiry.
	assert.Empty(t, assignment[17])
}

func TestWriteCSVEmptyFindingsIsHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, strings.Join(Columns, ",")+"\n", buf.String())
}

func TestWriteJSONIsByteStable(t *testing.T) {
	generatedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	document := models.NewReport(sampleFindings(), "tenant-1", "consenthound", "v1.2.3", generatedAt)

	var first, second bytes.Buffer
	require.NoError(t, WriteJSON(&first, document))
	require.NoError(t, WriteJSON(&second, document))

	assert.Equal(t, first.Bytes(), second.Bytes())
	assert.Contains(t, first.String(), `"runTimestampUtc": "2025-06-01T12:00:00Z"`)
	assert.Contains(t, first.String(), `"totalFindings": 2`)
	assert.Contains(t, first.String(), `"riskyFindings": 2`)
	assert.Contains(t, first.String(), `"RiskyGraphAppRole": 1`)
}

func TestWriteJSONEmptyFindingsRendersEmptyArray(t *testing.T) {
	document := models.NewReport(nil, "", "consenthound", "v0.0.0", time.Unix(0, 0))

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, document))
	assert.Contains(t, buf.String(), `"findings": []`)
	// An empty tenant id is omitted from metadata.
	assert.NotContains(t, buf.String(), "tenantId")
}
