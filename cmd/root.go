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
	"context"
	"fmt"
	"os"

	"github.com/consenthound/consenthound/client"
	"github.com/consenthound/consenthound/client/rest"
	"github.com/consenthound/consenthound/config"
	"github.com/consenthound/consenthound/constants"
	"github.com/consenthound/consenthound/logger"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

// Exit codes surfaced to calling automation.
const (
	ExitSuccess   = 0
	ExitFailure   = 1
	ExitRiskFound = 2
)

var log logr.Logger

var rootCmd = &cobra.Command{
	Use:               constants.Name,
	Long:              fmt.Sprintf("%s audits delegated OAuth2 consents and app role assignments in Microsoft Entra ID", constants.DisplayName),
	Version:           constants.Version,
	PersistentPreRunE: persistentPreRunE,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	if err := config.RegisterFlags(rootCmd, config.GlobalOptions()); err != nil {
		panic(err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}

func persistentPreRunE(cmd *cobra.Command, args []string) error {
	config.Init()

	if logr, err := logger.GetLogger(); err != nil {
		return err
	} else {
		log = *logr
	}
	return nil
}

func gracefulShutdown(stop context.CancelFunc) {
	stop()
	log.V(1).Info("shutting down gracefully")
}

// connectAndCreateClient builds the Graph client from the global config and
// performs the initial token acquisition.
func connectAndCreateClient(ctx context.Context) (client.AzureClient, error) {
	restConfig := rest.Config{
		TenantId:      config.AzTenant.Value().(string),
		ClientId:      config.AzAppId.Value().(string),
		ClientSecret:  config.AzSecret.Value().(string),
		CertPath:      config.AzCert.Value().(string),
		KeyPath:       config.AzKey.Value().(string),
		KeyPassphrase: config.AzKeyPass.Value().(string),
		Username:      config.AzUsername.Value().(string),
		Password:      config.AzPassword.Value().(string),
		ProxyUrl:      config.Proxy.Value().(string),
		Log:           log,
	}
	return client.NewClient(ctx, restConfig)
}
