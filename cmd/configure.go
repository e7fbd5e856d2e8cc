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
	"github.com/consenthound/consenthound/config"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configureCmd)
}

var configureCmd = &cobra.Command{
	Use:          "configure",
	Long:         "Interactively stores credentials and defaults in the config file",
	Run:          configureCmdImpl,
	SilenceUsage: true,
}

func configureCmdImpl(cmd *cobra.Command, args []string) {
	prompts := []struct {
		option config.Option
		label  string
		mask   bool
	}{
		{option: config.AzTenant, label: "Tenant id or domain"},
		{option: config.AzAppId, label: "Application (client) id"},
		{option: config.AzSecret, label: "Client secret (leave empty for certificate auth)", mask: true},
		{option: config.AzCert, label: "Certificate path (optional)"},
		{option: config.AzKey, label: "Private key path (optional)"},
	}

	for _, entry := range prompts {
		prompt := promptui.Prompt{Label: entry.label}
		if entry.mask {
			prompt.Mask = '*'
		}
		if current, ok := entry.option.Value().(string); ok && current != "" {
			prompt.Default = current
		}

		value, err := prompt.Run()
		if err != nil {
			log.Error(err, "configuration aborted")
			return
		}
		if value != "" {
			entry.option.Set(value)
		}
	}

	if err := config.WriteConfig(); err != nil {
		log.Error(err, "unable to write config file")
		return
	}
	log.Info("configuration saved", "path", config.DefaultConfigFile())
}
