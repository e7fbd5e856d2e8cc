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

package constants

import "fmt"

const (
	Name        = "consenthound"
	DisplayName = "ConsentHound"

	GraphBaseUrl    = "https://graph.microsoft.com"
	GraphApiVersion = "v1.0"

	// Well-known application id of the Microsoft Graph service principal,
	// identical in every tenant.
	MicrosoftGraphAppId = "00000003-0000-0000-c000-000000000000"

	GraphDefaultScope = "https://graph.microsoft.com/.default"
)

// Version is overridable at build time via -ldflags.
var Version = "v0.0.0"

func UserAgent() string {
	return fmt.Sprintf("%s/%s", Name, Version)
}
