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

// Package audit implements the audit engine: it drives the delegated-grant
// and app-role collection flows, joins raw records with resolved entities,
// classifies risk and produces the deterministically ordered finding set.
package audit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/consenthound/consenthound/client"
	"github.com/consenthound/consenthound/client/query"
	"github.com/consenthound/consenthound/constants"
	"github.com/consenthound/consenthound/enums"
	"github.com/consenthound/consenthound/models"
	"github.com/consenthound/consenthound/models/azure"
	"github.com/consenthound/consenthound/panicrecovery"
	"github.com/consenthound/consenthound/pipeline"
	"github.com/go-logr/logr"
	"github.com/gofrs/uuid"
)

type Options struct {
	IncludeDelegated bool
	IncludeAppRoles  bool
	OnlyRisky        bool

	// ContinueOnError keeps the surviving flow running when the other
	// fails after exhausting retries.
	ContinueOnError bool

	// Rules defaults to DefaultRuleSet when empty.
	Rules RuleSet
}

// FlowOutcome reports how one audit flow ended.
type FlowOutcome struct {
	Name      string
	Enabled   bool
	Completed bool

	// Count is the number of findings contributed when completed; Partial
	// is the raw record count yielded before a failure.
	Count   int
	Partial int
	Err     error
}

type RunStatus int

const (
	StatusSuccess RunStatus = iota
	StatusPartial
	StatusFailed
)

func (s RunStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusPartial:
		return "partial"
	default:
		return "failed"
	}
}

// Result is the combined outcome of a run: the merged, filtered, sorted
// finding list plus a per-flow outcome. Flow failures are composed here
// rather than raised across flow boundaries.
type Result struct {
	Findings  []models.Finding
	Delegated FlowOutcome
	AppRoles  FlowOutcome
}

func (s Result) Status() RunStatus {
	var enabled, completed int
	for _, outcome := range []FlowOutcome{s.Delegated, s.AppRoles} {
		if !outcome.Enabled {
			continue
		}
		enabled++
		if outcome.Completed {
			completed++
		}
	}
	switch {
	case enabled == completed:
		return StatusSuccess
	case completed == 0:
		return StatusFailed
	default:
		return StatusPartial
	}
}

func (s Result) RiskyCount() int {
	count := 0
	for _, finding := range s.Findings {
		if finding.Risky() {
			count++
		}
	}
	return count
}

type Engine struct {
	client   client.AzureClient
	resolver *Resolver
	rules    RuleSet
	options  Options
	log      logr.Logger
}

func NewEngine(azClient client.AzureClient, options Options, log logr.Logger) *Engine {
	rules := options.Rules
	if len(rules.Scopes) == 0 && len(rules.Roles) == 0 {
		rules = DefaultRuleSet()
	}
	return &Engine{
		client:   azClient,
		resolver: NewResolver(azClient, log),
		rules:    rules,
		options:  options,
		log:      log,
	}
}

// Run executes the configured flows concurrently over a shared resolver
// cache and assembles the final ordered finding set.
func (s *Engine) Run(ctx context.Context) Result {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := Result{
		Delegated: FlowOutcome{Name: "delegated grants", Enabled: s.options.IncludeDelegated},
		AppRoles:  FlowOutcome{Name: "app role assignments", Enabled: s.options.IncludeAppRoles},
	}

	var (
		wg                 sync.WaitGroup
		delegatedFindings  []models.Finding
		assignmentFindings []models.Finding
	)

	run := func(outcome *FlowOutcome, findings *[]models.Finding, collect func(context.Context) ([]models.Finding, error)) {
		defer wg.Done()
		defer panicrecovery.PanicRecovery()

		collected, err := collect(runCtx)
		if err != nil {
			outcome.Err = err
			var collectionErr *CollectionError
			if errors.As(err, &collectionErr) {
				outcome.Partial = collectionErr.Partial
			}
			s.log.Error(err, "audit flow failed", "flow", outcome.Name)
			if !s.options.ContinueOnError {
				cancel()
			}
			return
		}
		outcome.Completed = true
		outcome.Count = len(collected)
		*findings = collected
		s.log.Info("audit flow completed", "flow", outcome.Name, "findings", len(collected))
	}

	if s.options.IncludeDelegated {
		wg.Add(1)
		go run(&result.Delegated, &delegatedFindings, s.collectDelegatedGrants)
	}
	if s.options.IncludeAppRoles {
		wg.Add(1)
		go run(&result.AppRoles, &assignmentFindings, s.collectAppRoleAssignments)
	}
	wg.Wait()

	findings := append(delegatedFindings, assignmentFindings...)
	if s.options.OnlyRisky {
		risky := findings[:0]
		for _, finding := range findings {
			if finding.Risky() {
				risky = append(risky, finding)
			}
		}
		findings = risky
	}
	SortFindings(findings)
	result.Findings = findings
	return result
}

// collectDelegatedGrants pages every delegated grant, bulk-resolves the
// referenced entities, then builds one finding per grant.
func (s *Engine) collectDelegatedGrants(ctx context.Context) ([]models.Finding, error) {
	var grants []azure.OAuth2PermissionGrant

	for item := range pipeline.OrDone(ctx.Done(), s.client.ListOAuth2PermissionGrants(ctx, query.GraphParams{})) {
		if item.Error != nil {
			return nil, &CollectionError{Flow: "delegated grants", Partial: len(grants), Err: item.Error}
		}
		grants = append(grants, item.Ok)
	}
	if err := ctx.Err(); err != nil {
		return nil, &CollectionError{Flow: "delegated grants", Partial: len(grants), Err: err}
	}
	s.log.V(1).Info("collected delegated grants", "count", len(grants))

	var spIds, userIds []string
	for _, grant := range grants {
		spIds = append(spIds, grant.ClientId, grant.ResourceId)
		if grant.PrincipalId != "" {
			userIds = append(userIds, grant.PrincipalId)
		}
	}
	s.resolver.WarmServicePrincipals(ctx, spIds)
	s.resolver.WarmUsers(ctx, userIds)

	findings := make([]models.Finding, 0, len(grants))
	for _, grant := range grants {
		findings = append(findings, s.buildDelegatedFinding(ctx, grant))
	}
	return findings, nil
}

func (s *Engine) buildDelegatedFinding(ctx context.Context, grant azure.OAuth2PermissionGrant) models.Finding {
	var principal *models.EntityRef
	if grant.PrincipalId != "" {
		resolved := s.resolver.User(ctx, grant.PrincipalId)
		principal = &resolved
	}

	scopes := strings.Fields(grant.Scope)
	verdict := Classify(scopes, enums.ConsentType(grant.ConsentType), s.rules.Scopes, enums.RiskReasonRiskyScope)

	return models.Finding{
		FindingType:     enums.FindingDelegatedGrant,
		Client:          s.resolver.ServicePrincipal(ctx, grant.ClientId),
		Resource:        s.resolver.ServicePrincipal(ctx, grant.ResourceId),
		Principal:       principal,
		ConsentType:     enums.ConsentType(grant.ConsentType),
		Scopes:          scopes,
		RiskyItems:      verdict.RiskyItems,
		RiskyCount:      len(verdict.RiskyItems),
		RiskReasons:     verdict.Reasons,
		RiskNotes:       verdict.Notes,
		CreatedDateTime: grant.StartTime,
		ExpiryTime:      grant.ExpiryTime,
	}
}

// collectAppRoleAssignments lists role assignments granted on the Microsoft
// Graph service principal. Only assignments to the Graph resource matter for
// this audit, so listing from the resource side avoids enumerating every
// service principal in the tenant.
func (s *Engine) collectAppRoleAssignments(ctx context.Context) ([]models.Finding, error) {
	graphSP, err := s.findGraphServicePrincipal(ctx)
	if err != nil {
		return nil, &CollectionError{Flow: "app role assignments", Err: err}
	}

	roleValues := map[string]string{}
	for _, role := range graphSP.AppRoles {
		roleValues[strings.ToLower(role.Id)] = role.Value
	}
	s.log.V(1).Info("resolved graph service principal", "id", graphSP.Id, "appRoles", len(roleValues))

	graphRef := models.EntityRef{
		Id:          graphSP.Id,
		DisplayName: graphSP.DisplayName,
		AppId:       graphSP.AppId,
	}

	var assignments []azure.AppRoleAssignment
	for item := range pipeline.OrDone(ctx.Done(), s.client.ListAppRoleAssignedTo(ctx, graphSP.Id, query.GraphParams{})) {
		if item.Error != nil {
			return nil, &CollectionError{Flow: "app role assignments", Partial: len(assignments), Err: item.Error}
		}
		assignments = append(assignments, item.Ok)
	}
	if err := ctx.Err(); err != nil {
		return nil, &CollectionError{Flow: "app role assignments", Partial: len(assignments), Err: err}
	}

	var assigneeIds []string
	for _, assignment := range assignments {
		if assignment.PrincipalType == "ServicePrincipal" {
			assigneeIds = append(assigneeIds, assignment.PrincipalId)
		}
	}
	s.resolver.WarmServicePrincipals(ctx, assigneeIds)

	findings := make([]models.Finding, 0, len(assignments))
	for _, assignment := range assignments {
		if isDefaultAppRole(assignment.AppRoleId) {
			continue
		}
		findings = append(findings, s.buildAssignmentFinding(ctx, assignment, graphRef, roleValues))
	}
	return findings, nil
}

func (s *Engine) buildAssignmentFinding(ctx context.Context, assignment azure.AppRoleAssignment, graphRef models.EntityRef, roleValues map[string]string) models.Finding {
	assignee := s.resolveAssignee(ctx, assignment)

	roleValue, ok := roleValues[strings.ToLower(assignment.AppRoleId)]
	if !ok || roleValue == "" {
		roleValue = fmt.Sprintf("Unknown-Role-%s", assignment.AppRoleId)
	}

	roles := []string{roleValue}
	verdict := Classify(roles, enums.ConsentTypeApplication, s.rules.Roles, enums.RiskReasonRiskyGraphAppRole)

	return models.Finding{
		FindingType:     enums.FindingAppRoleAssignment,
		Client:          assignee,
		Resource:        graphRef,
		ConsentType:     enums.ConsentTypeApplication,
		Scopes:          roles,
		RiskyItems:      verdict.RiskyItems,
		RiskyCount:      len(verdict.RiskyItems),
		RiskReasons:     verdict.Reasons,
		RiskNotes:       verdict.Notes,
		CreatedDateTime: assignment.CreatedDateTime,
	}
}

func (s *Engine) resolveAssignee(ctx context.Context, assignment azure.AppRoleAssignment) models.EntityRef {
	switch assignment.PrincipalType {
	case "User":
		return s.resolver.User(ctx, assignment.PrincipalId)
	case "ServicePrincipal", "":
		return s.resolver.ServicePrincipal(ctx, assignment.PrincipalId)
	default:
		// Groups and other principal types keep the denormalized display
		// name Graph already returned.
		return models.EntityRef{Id: assignment.PrincipalId, DisplayName: assignment.PrincipalDisplayName}
	}
}

func (s *Engine) findGraphServicePrincipal(ctx context.Context) (azure.ServicePrincipal, error) {
	params := query.GraphParams{
		Filter: fmt.Sprintf("appId eq '%s'", constants.MicrosoftGraphAppId),
		Select: []string{"id", "appId", "displayName", "appRoles"},
	}
	for item := range pipeline.OrDone(ctx.Done(), s.client.ListServicePrincipals(ctx, params)) {
		if item.Error != nil {
			return azure.ServicePrincipal{}, item.Error
		}
		return item.Ok, nil
	}
	if err := ctx.Err(); err != nil {
		return azure.ServicePrincipal{}, err
	}
	return azure.ServicePrincipal{}, errors.New("microsoft graph service principal not found in tenant")
}

func isDefaultAppRole(appRoleId string) bool {
	parsed, err := uuid.FromString(appRoleId)
	return err == nil && parsed == uuid.Nil
}

// SortFindings orders findings by the report sort key: finding type,
// client display name, resource display name, principal UPN (empty first),
// joined scopes, then client app id and principal id as final tiebreakers so
// the order is total. Byte-identical input yields byte-identical order.
func SortFindings(findings []models.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return findingLess(findings[i], findings[j])
	})
}

func findingLess(a, b models.Finding) bool {
	if a.FindingType != b.FindingType {
		return typeRank(a.FindingType) < typeRank(b.FindingType)
	}
	if c := compareFold(a.Client.DisplayName, b.Client.DisplayName); c != 0 {
		return c < 0
	}
	if c := compareFold(a.Resource.DisplayName, b.Resource.DisplayName); c != 0 {
		return c < 0
	}
	if c := strings.Compare(a.PrincipalUPN(), b.PrincipalUPN()); c != 0 {
		return c < 0
	}
	if c := strings.Compare(a.JoinedScopes(), b.JoinedScopes()); c != 0 {
		return c < 0
	}
	if c := strings.Compare(a.Client.AppId, b.Client.AppId); c != 0 {
		return c < 0
	}
	return a.PrincipalId() < b.PrincipalId()
}

func typeRank(findingType enums.FindingType) int {
	if findingType == enums.FindingDelegatedGrant {
		return 0
	}
	return 1
}

func compareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
