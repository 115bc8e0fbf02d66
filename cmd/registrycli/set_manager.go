package main

import (
	"github.com/spf13/cobra"

	"github.com/synnergy-registry/registry/core"
)

var setManagerCmd = &cobra.Command{
	Use:   "set_manager",
	Short: "Register the signer as the registry's Manager",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			return err
		}
		payload, err := core.EncodeSetManager(core.SetManagerBody{Name: name})
		return applyPayload(cmd, core.TagSetManager, payload, err)
	},
}

func init() {
	setManagerCmd.Flags().String("name", "", "display name for the manager account")
	_ = setManagerCmd.MarkFlagRequired("name")
}
