package main

import (
	"github.com/spf13/cobra"

	"github.com/synnergy-registry/registry/core"
)

var setAccountCmd = &cobra.Command{
	Use:   "set_account",
	Short: "Register the signer as a plain Account",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			return err
		}
		payload, err := core.EncodeSetAccount(core.SetAccountBody{Name: name})
		return applyPayload(cmd, core.TagSetAccount, payload, err)
	},
}

func init() {
	setAccountCmd.Flags().String("name", "", "display name for the account")
	_ = setAccountCmd.MarkFlagRequired("name")
}
