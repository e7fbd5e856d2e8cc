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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRule(t *testing.T) {
	cases := []struct {
		pattern string
		value   string
		match   bool
	}{
		{"Mail.Read", "Mail.Read", true},
		{"Mail.Read", "mail.read", true},
		{"Mail.Read", "Mail.ReadWrite", false},
		{"Directory.*", "Directory.ReadWrite.All", true},
		{"Directory.*", "directory.accessasuser.all", true},
		{"Directory.*", "User.Read", false},
		{"*ReadWrite*", "Files.ReadWrite.All", true},
		{"*ReadWrite*", "Sites.readwrite.all", true},
		{"*ReadWrite*", "Files.Read.All", false},
	}

	for _, tc := range cases {
		rule := ParseRule(tc.pattern)
		assert.Equalf(t, tc.match, rule.Matches(tc.value), "pattern %q against %q", tc.pattern, tc.value)
	}
}

func TestDefaultRuleSetFlagsKnownRiskyStrings(t *testing.T) {
	rules := DefaultRuleSet()

	assert.True(t, matchesAny(rules.Scopes, "Mail.Read"))
	assert.True(t, matchesAny(rules.Scopes, "offline_access"))
	// The ReadWrite heuristic catches scopes outside the explicit list.
	assert.True(t, matchesAny(rules.Scopes, "Calendars.ReadWrite"))
	assert.False(t, matchesAny(rules.Scopes, "User.Read"))
	assert.False(t, matchesAny(rules.Scopes, "openid"))

	assert.True(t, matchesAny(rules.Roles, "Directory.ReadWrite.All"))
	assert.True(t, matchesAny(rules.Roles, "directory.readwrite.all"))
	assert.False(t, matchesAny(rules.Roles, "User.Read.All"))
}

func TestRuleSetOverridesAreIndependent(t *testing.T) {
	rules := DefaultRuleSet().WithScopeOverrides([]string{"Custom.Scope", "Legacy.*"})

	assert.True(t, matchesAny(rules.Scopes, "Custom.Scope"))
	assert.True(t, matchesAny(rules.Scopes, "Legacy.Anything"))
	// The default scope set is replaced wholesale.
	assert.False(t, matchesAny(rules.Scopes, "Mail.Read"))
	// The role set is untouched.
	assert.True(t, matchesAny(rules.Roles, "Directory.ReadWrite.All"))

	rules = rules.WithRoleOverrides([]string{"Only.This.Role"})
	assert.True(t, matchesAny(rules.Roles, "only.this.role"))
	assert.False(t, matchesAny(rules.Roles, "Directory.ReadWrite.All"))
}

func TestEmptyOverridesKeepDefaults(t *testing.T) {
	rules := DefaultRuleSet().WithScopeOverrides(nil).WithRoleOverrides([]string{})
	assert.True(t, matchesAny(rules.Scopes, "Mail.Read"))
	assert.True(t, matchesAny(rules.Roles, "Application.ReadWrite.All"))
}
