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

// Package report serializes the ordered finding set into the CSV and JSON
// output documents. Serialization is deterministic: the same findings
// always produce byte-identical output.
package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/consenthound/consenthound/models"
)

// Columns is the documented CSV column set, in order.
var Columns = []string{
	"FindingType",
	"ClientDisplayName",
	"ClientAppId",
	"ClientObjectId",
	"ClientPublisher",
	"ResourceDisplayName",
	"ResourceAppId",
	"PrincipalDisplayName",
	"PrincipalUPN",
	"PrincipalId",
	"ConsentType",
	"Scopes",
	"RiskyItems",
	"RiskyCount",
	"RiskReason",
	"RiskNotes",
	"CreatedDateTime",
	"ExpiryTime",
}

// WriteCSV writes the findings in their given order. Field escaping is
// handled by encoding/csv; list fields are joined with stable delimiters
// (space for scopes, comma for risky items).
func WriteCSV(w io.Writer, findings []models.Finding) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Columns); err != nil {
		return err
	}
	for _, finding := range findings {
		row := []string{
			finding.FindingType.String(),
			finding.Client.DisplayName,
			finding.Client.AppId,
			finding.Client.Id,
			finding.Client.PublisherName,
			finding.Resource.DisplayName,
			finding.Resource.AppId,
			finding.PrincipalDisplayName(),
			finding.PrincipalUPN(),
			finding.PrincipalId(),
			string(finding.ConsentType),
			finding.JoinedScopes(),
			strings.Join(finding.RiskyItems, ","),
			strconv.Itoa(finding.RiskyCount),
			finding.RiskReason(),
			finding.RiskNotes,
			finding.CreatedDateTime,
			finding.ExpiryTime,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
