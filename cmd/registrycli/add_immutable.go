package main

import (
	"github.com/spf13/cobra"

	"github.com/synnergy-registry/registry/core"
)

var addImmutableCmd = &cobra.Command{
	Use:   "add_immutable",
	Short: "Append an immutable attribute to an active token (manager only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier, err := cmd.Flags().GetString("identifier")
		if err != nil {
			return err
		}
		key, err := cmd.Flags().GetString("key")
		if err != nil {
			return err
		}
		rawValues, err := cmd.Flags().GetStringArray("value")
		if err != nil {
			return err
		}
		values, err := parseKVPairs(rawValues)
		if err != nil {
			return err
		}
		payload, err := core.EncodeAddImmutable(core.AddImmutableBody{
			TokenName:  identifier,
			Immutables: []core.Attribute{{Key: key, Value: values}},
		})
		return applyPayload(cmd, core.TagAddImmutable, payload, err)
	},
}

func init() {
	addImmutableCmd.Flags().String("identifier", "", "token the immutable is appended to")
	addImmutableCmd.Flags().String("key", "", "immutable attribute key, e.g. endorsement")
	addImmutableCmd.Flags().StringArray("value", nil, "nested key=value pair (repeatable)")
	_ = addImmutableCmd.MarkFlagRequired("identifier")
	_ = addImmutableCmd.MarkFlagRequired("key")
}
