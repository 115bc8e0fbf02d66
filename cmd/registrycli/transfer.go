package main

import (
	"github.com/spf13/cobra"

	"github.com/synnergy-registry/registry/core"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer amount of a token from the signer to a receiver",
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier, err := cmd.Flags().GetString("identifier")
		if err != nil {
			return err
		}
		receiver, err := cmd.Flags().GetString("receiver_pkey")
		if err != nil {
			return err
		}
		amount, err := cmd.Flags().GetFloat64("amount")
		if err != nil {
			return err
		}
		timestamp, err := cmd.Flags().GetString("date")
		if err != nil {
			return err
		}
		payload, err := core.EncodeTransfer(core.TransferBody{
			Identifier:   identifier,
			ReceiverPKey: receiver,
			Amount:       amount,
			Timestamp:    timestamp,
		})
		return applyPayload(cmd, core.TagTransfer, payload, err)
	},
}

func init() {
	transferCmd.Flags().String("identifier", "", "token to transfer")
	transferCmd.Flags().String("receiver_pkey", "", "receiving account's public key")
	transferCmd.Flags().Float64("amount", 0, "amount to transfer")
	transferCmd.Flags().String("date", "", "decimal seconds-since-epoch timestamp for the transfer address")
	_ = transferCmd.MarkFlagRequired("identifier")
	_ = transferCmd.MarkFlagRequired("receiver_pkey")
	_ = transferCmd.MarkFlagRequired("amount")
	_ = transferCmd.MarkFlagRequired("date")
}
