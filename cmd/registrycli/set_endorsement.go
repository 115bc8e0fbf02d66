package main

import (
	"github.com/spf13/cobra"

	"github.com/synnergy-registry/registry/core"
)

var setEndorsementCmd = &cobra.Command{
	Use:   "set_endorsement",
	Short: "Replace a target account's endorsement list (manager only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := cmd.Flags().GetString("target_pkey")
		if err != nil {
			return err
		}
		keys, err := cmd.Flags().GetStringArray("key")
		if err != nil {
			return err
		}
		payload, err := core.EncodeSetEndorsement(core.SetEndorsementBody{
			TargetPKey:  target,
			Endorsement: endorsementFromKeys(keys),
		})
		return applyPayload(cmd, core.TagSetEndorsement, payload, err)
	},
}

func init() {
	setEndorsementCmd.Flags().String("target_pkey", "", "account whose endorsement list is replaced")
	setEndorsementCmd.Flags().StringArray("key", nil, "endorsement key to set, e.g. --key blacklist (repeatable)")
	_ = setEndorsementCmd.MarkFlagRequired("target_pkey")
}
