package main

import (
	"github.com/spf13/cobra"

	"github.com/synnergy-registry/registry/core"
)

var issueTokenCmd = &cobra.Command{
	Use:   "issue_token",
	Short: "Mint a new token with the signer as its issuer (manager only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier, err := cmd.Flags().GetString("identifier")
		if err != nil {
			return err
		}
		totalSupply, err := cmd.Flags().GetFloat64("total_supply")
		if err != nil {
			return err
		}
		payload, err := core.EncodeIssueToken(core.IssueTokenBody{
			Identifier:  identifier,
			TotalSupply: totalSupply,
		})
		return applyPayload(cmd, core.TagIssueToken, payload, err)
	},
}

func init() {
	issueTokenCmd.Flags().String("identifier", "", "unique token identifier")
	issueTokenCmd.Flags().Float64("total_supply", 0, "initial total supply minted to the signer")
	_ = issueTokenCmd.MarkFlagRequired("identifier")
	_ = issueTokenCmd.MarkFlagRequired("total_supply")
}
