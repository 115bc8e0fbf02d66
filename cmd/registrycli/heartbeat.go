package main

import (
	"github.com/spf13/cobra"

	"github.com/synnergy-registry/registry/core"
)

var heartbeatCmd = &cobra.Command{
	Use:   "heartbeat",
	Short: "Trigger the scheduled proportional Cash Token payout for a token's holders",
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier, err := cmd.Flags().GetString("identifier")
		if err != nil {
			return err
		}
		receivers, err := cmd.Flags().GetStringArray("receiver_pkey")
		if err != nil {
			return err
		}
		date, err := cmd.Flags().GetString("date")
		if err != nil {
			return err
		}
		date, err = resolveHeartbeatDate(date)
		if err != nil {
			return err
		}
		payload, err := core.EncodeHeartbeat(core.HeartbeatBody{
			Identifier:    identifier,
			ReceiversPKey: receivers,
			Date:          date,
		})
		return applyPayload(cmd, core.TagHeartbeat, payload, err)
	},
}

func init() {
	heartbeatCmd.Flags().String("identifier", "", "subject token whose payment schedule is checked")
	heartbeatCmd.Flags().StringArray("receiver_pkey", nil, "holder to pay (repeatable)")
	heartbeatCmd.Flags().String("date", "", "MM/DD/YYYY or decimal seconds-since-epoch")
	_ = heartbeatCmd.MarkFlagRequired("identifier")
	_ = heartbeatCmd.MarkFlagRequired("date")
}
