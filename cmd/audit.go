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

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/consenthound/consenthound/audit"
	"github.com/consenthound/consenthound/config"
	"github.com/consenthound/consenthound/constants"
	"github.com/consenthound/consenthound/models"
	"github.com/consenthound/consenthound/panicrecovery"
	"github.com/consenthound/consenthound/report"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(auditCmd)
	if err := config.RegisterFlags(auditCmd, config.AuditOptions()); err != nil {
		panic(err)
	}
}

var auditCmd = &cobra.Command{
	Use:          "audit",
	Long:         "Audits delegated OAuth2 permission grants and Graph app role assignments, writing CSV/JSON reports",
	Run:          auditCmdImpl,
	SilenceUsage: true,
}

func auditCmdImpl(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, os.Kill)
	defer gracefulShutdown(stop)

	options := audit.Options{
		IncludeDelegated: !config.SkipDelegated.Value().(bool),
		IncludeAppRoles:  !config.SkipAppRoles.Value().(bool),
		OnlyRisky:        config.OnlyRisky.Value().(bool),
		ContinueOnError:  config.ContinueOnError.Value().(bool),
	}
	if !options.IncludeDelegated && !options.IncludeAppRoles {
		log.Error(nil, "nothing to audit: both flows are disabled")
		os.Exit(ExitFailure)
	}

	rules, err := loadRuleSet()
	if err != nil {
		log.Error(err, "unable to load risk rule overrides")
		os.Exit(ExitFailure)
	}
	options.Rules = rules

	log.V(1).Info("testing connections")
	azClient, err := connectAndCreateClient(ctx)
	if err != nil {
		log.Error(err, "unable to connect to microsoft graph")
		os.Exit(ExitFailure)
	}
	defer azClient.CloseIdleConnections()
	panicrecovery.HandleBubbledPanic(ctx, stop, log)

	log.Info("auditing tenant", "tenant", azClient.TenantId())
	start := time.Now()
	result := audit.NewEngine(azClient, options, log).Run(ctx)
	log.Info("audit completed",
		"status", result.Status().String(),
		"findings", len(result.Findings),
		"risky", result.RiskyCount(),
		"duration", time.Since(start).String(),
	)

	if err := writeReports(result.Findings, azClient.TenantId()); err != nil {
		log.Error(err, "unable to write reports")
		os.Exit(ExitFailure)
	}

	if result.Status() != audit.StatusSuccess {
		os.Exit(ExitFailure)
	}
	if config.FailOnRisk.Value().(bool) && result.RiskyCount() > 0 {
		log.Info("risky findings detected", "count", result.RiskyCount())
		os.Exit(ExitRiskFound)
	}
}

func writeReports(findings []models.Finding, tenantId string) error {
	var (
		outputDir = config.OutputDir.Value().(string)
		format    = config.OutputFormat.Value().(string)
	)
	if format != "csv" && format != "json" && format != "both" {
		return fmt.Errorf("unsupported format %q: expected csv, json or both", format)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	if format == "csv" || format == "both" {
		path := filepath.Join(outputDir, constants.Name+".csv")
		if err := writeFile(path, func(f *os.File) error {
			return report.WriteCSV(f, findings)
		}); err != nil {
			return err
		}
		log.Info("wrote csv report", "path", path)
	}

	if format == "json" || format == "both" {
		document := models.NewReport(findings, tenantId, constants.Name, constants.Version, time.Now())
		path := filepath.Join(outputDir, constants.Name+".json")
		if err := writeFile(path, func(f *os.File) error {
			return report.WriteJSON(f, document)
		}); err != nil {
			return err
		}
		log.Info("wrote json report", "path", path)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// loadRuleSet applies user-supplied override lists on top of the defaults.
// Each file is a flat JSON list of strings; entries may carry trailing-`*`
// or surrounding-`*` wildcards.
func loadRuleSet() (audit.RuleSet, error) {
	rules := audit.DefaultRuleSet()

	if path := config.RiskScopesFile.Value().(string); path != "" {
		patterns, err := loadStringList(path)
		if err != nil {
			return rules, err
		}
		rules = rules.WithScopeOverrides(patterns)
	}
	if path := config.RiskRolesFile.Value().(string); path != "" {
		patterns, err := loadStringList(path)
		if err != nil {
			return rules, err
		}
		rules = rules.WithRoleOverrides(patterns)
	}
	return rules, nil
}

func loadStringList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%s is not a JSON list of strings: %w", path, err)
	}
	return values, nil
}
