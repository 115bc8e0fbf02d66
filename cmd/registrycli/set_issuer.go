package main

import (
	"github.com/spf13/cobra"

	"github.com/synnergy-registry/registry/core"
)

var setIssuerCmd = &cobra.Command{
	Use:   "set_issuer",
	Short: "Register the signer as the registry's Issuer and auto-mint the Cash Token",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			return err
		}
		payload, err := core.EncodeSetIssuer(core.SetIssuerBody{Name: name})
		return applyPayload(cmd, core.TagSetIssuer, payload, err)
	},
}

func init() {
	setIssuerCmd.Flags().String("name", "", "display name for the issuer account")
	_ = setIssuerCmd.MarkFlagRequired("name")
}
