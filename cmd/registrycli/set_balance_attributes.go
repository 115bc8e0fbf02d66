package main

import (
	"github.com/spf13/cobra"

	"github.com/synnergy-registry/registry/core"
)

var setBalanceAttributesCmd = &cobra.Command{
	Use:   "set_balance_attributes",
	Short: "Replace the attribute list on one or more of the signer's balances",
	RunE: func(cmd *cobra.Command, args []string) error {
		identifiers, err := cmd.Flags().GetStringArray("identifier")
		if err != nil {
			return err
		}
		rawAttrs, err := cmd.Flags().GetStringArray("attr")
		if err != nil {
			return err
		}
		attrs, err := parseKVPairs(rawAttrs)
		if err != nil {
			return err
		}
		payload, err := core.EncodeSetBalanceAttributes(core.SetBalanceAttributesBody{
			OwnerPKey:   signer,
			Identifiers: identifiers,
			Attributes:  attrs,
		})
		return applyPayload(cmd, core.TagSetBalanceAttributes, payload, err)
	},
}

func init() {
	setBalanceAttributesCmd.Flags().StringArray("identifier", nil, "balance's token identifier (repeatable)")
	setBalanceAttributesCmd.Flags().StringArray("attr", nil, "key=value attribute (repeatable)")
	_ = setBalanceAttributesCmd.MarkFlagRequired("identifier")
}
