package main

import (
	"github.com/spf13/cobra"

	"github.com/synnergy-registry/registry/core"
)

var setTokenStatusCmd = &cobra.Command{
	Use:   "set_token_status",
	Short: "Flip a token between ACTIVE and INACTIVE (manager only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier, err := cmd.Flags().GetString("identifier")
		if err != nil {
			return err
		}
		active, err := cmd.Flags().GetBool("active")
		if err != nil {
			return err
		}
		status := core.StatusActive
		if !active {
			status = core.StatusInactive
		}
		payload, err := core.EncodeSetTokenStatus(core.SetTokenStatusBody{Identifier: identifier, Status: status})
		return applyPayload(cmd, core.TagSetTokenStatus, payload, err)
	},
}

func init() {
	setTokenStatusCmd.Flags().String("identifier", "", "token to flip")
	setTokenStatusCmd.Flags().Bool("active", true, "set ACTIVE (true) or INACTIVE (false)")
	_ = setTokenStatusCmd.MarkFlagRequired("identifier")
}
