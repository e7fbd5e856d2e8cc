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

import "strings"

type ruleKind int

const (
	ruleExact ruleKind = iota
	rulePrefix
	ruleContains
)

// Rule matches a permission string either exactly, by prefix, or by
// substring. All matching is case-insensitive. The textual forms are
// "Mail.Read" (exact), "Directory.*" (prefix) and "*ReadWrite*" (contains).
type Rule struct {
	kind    ruleKind
	pattern string
	source  string
}

// ParseRule interprets trailing and surrounding `*` wildcards.
func ParseRule(s string) Rule {
	trimmed := strings.TrimSpace(s)
	lowered := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lowered, "*") && strings.HasSuffix(lowered, "*") && len(lowered) > 2:
		return Rule{kind: ruleContains, pattern: lowered[1 : len(lowered)-1], source: trimmed}
	case strings.HasSuffix(lowered, "*") && len(lowered) > 1:
		return Rule{kind: rulePrefix, pattern: lowered[:len(lowered)-1], source: trimmed}
	default:
		return Rule{kind: ruleExact, pattern: lowered, source: trimmed}
	}
}

func (s Rule) Matches(value string) bool {
	lowered := strings.ToLower(value)
	switch s.kind {
	case rulePrefix:
		return strings.HasPrefix(lowered, s.pattern)
	case ruleContains:
		return strings.Contains(lowered, s.pattern)
	default:
		return lowered == s.pattern
	}
}

func (s Rule) String() string {
	return s.source
}

// RuleSet holds the risky delegated-scope and app-role rules for a run.
// Immutable once built.
type RuleSet struct {
	Scopes []Rule
	Roles  []Rule
}

// Delegated scopes flagged by default. Any scope containing "ReadWrite" is
// additionally flagged via a wildcard rule in DefaultRuleSet.
var defaultRiskyScopes = []string{
	"Directory.AccessAsUser.All",
	"Mail.Read",
	"Mail.ReadWrite",
	"Files.Read.All",
	"Files.ReadWrite.All",
	"Sites.Read.All",
	"Sites.ReadWrite.All",
	"offline_access",
	"User.Read.All",
	"Group.Read.All",
	"Policy.Read.All",
	"RoleManagement.ReadWrite.Directory",
	"*ReadWrite*",
}

// Graph application roles flagged by default.
var defaultRiskyRoles = []string{
	"Directory.ReadWrite.All",
	"RoleManagement.ReadWrite.Directory",
	"Application.ReadWrite.All",
	"AppRoleAssignment.ReadWrite.All",
	"User.ReadWrite.All",
	"Group.ReadWrite.All",
	"Policy.ReadWrite.ConditionalAccess",
}

func parseRules(patterns []string) []Rule {
	rules := make([]Rule, 0, len(patterns))
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		rules = append(rules, ParseRule(pattern))
	}
	return rules
}

func DefaultRuleSet() RuleSet {
	return RuleSet{
		Scopes: parseRules(defaultRiskyScopes),
		Roles:  parseRules(defaultRiskyRoles),
	}
}

// WithScopeOverrides replaces the scope rules; the role rules are kept.
// An empty list keeps the defaults.
func (s RuleSet) WithScopeOverrides(patterns []string) RuleSet {
	if len(patterns) == 0 {
		return s
	}
	return RuleSet{Scopes: parseRules(patterns), Roles: s.Roles}
}

// WithRoleOverrides replaces the role rules; the scope rules are kept.
// An empty list keeps the defaults.
func (s RuleSet) WithRoleOverrides(patterns []string) RuleSet {
	if len(patterns) == 0 {
		return s
	}
	return RuleSet{Scopes: s.Scopes, Roles: parseRules(patterns)}
}

func matchesAny(rules []Rule, value string) bool {
	for _, rule := range rules {
		if rule.Matches(value) {
			return true
		}
	}
	return false
}
