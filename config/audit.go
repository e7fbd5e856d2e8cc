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

package config

var (
	OutputDir = Option{
		Name:      "output-dir",
		Shorthand: "o",
		Usage:     "Directory to write reports into",
		Default:   "out",
	}

	OutputFormat = Option{
		Name:    "format",
		Usage:   "Report format: csv, json or both",
		Default: "both",
	}

	OnlyRisky = Option{
		Name:    "only-risky",
		Usage:   "Report only findings with risky scopes or roles",
		Default: false,
	}

	FailOnRisk = Option{
		Name:    "fail-on-risk",
		Usage:   "Exit with code 2 if any risky findings are detected",
		Default: false,
	}

	SkipDelegated = Option{
		Name:    "no-delegated",
		Usage:   "Skip auditing delegated permission grants",
		Default: false,
	}

	SkipAppRoles = Option{
		Name:    "no-app-roles",
		Usage:   "Skip auditing app role assignments",
		Default: false,
	}

	RiskScopesFile = Option{
		Name:    "risk-scopes-file",
		Usage:   "Path to a JSON list of risky delegated scopes, replacing the built-in set",
		Default: "",
	}

	RiskRolesFile = Option{
		Name:    "risk-roles-file",
		Usage:   "Path to a JSON list of risky app roles, replacing the built-in set",
		Default: "",
	}

	ContinueOnError = Option{
		Name:    "continue-on-error",
		Usage:   "Keep auditing the remaining flow when the other fails",
		Default: true,
	}
)

func AuditOptions() []Option {
	return []Option{
		OutputDir,
		OutputFormat,
		OnlyRisky,
		FailOnRisk,
		SkipDelegated,
		SkipAppRoles,
		RiskScopesFile,
		RiskRolesFile,
		ContinueOnError,
	}
}
