package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/synnergy-registry/registry/core"
)

var (
	storeDir string
	signer   string
)

var rootCmd = &cobra.Command{
	Use:   "registrycli",
	Short: "Operator CLI for the on-ledger asset registry",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeDir, "store-dir", "data", "directory holding the registry's WAL and snapshot")
	rootCmd.PersistentFlags().StringVar(&signer, "signer", "", "public key this invocation signs the transaction as")
	_ = rootCmd.MarkPersistentFlagRequired("signer")

	rootCmd.AddCommand(
		setManagerCmd,
		setIssuerCmd,
		setAccountCmd,
		setEndorsementCmd,
		addImmutableCmd,
		issueTokenCmd,
		setTokenStatusCmd,
		transferCmd,
		heartbeatCmd,
		setBalanceAttributesCmd,
	)
}

// Execute runs the root command; callers map its error to a process exit
// code (0 success, 1 on any core.Error per the CLI's documented contract).
func Execute() error {
	return rootCmd.Execute()
}

// applyPayload opens the configured store, applies payload as signer, and
// logs the outcome with the fields the operator needs to correlate a CLI
// invocation with the resulting state mutation.
func applyPayload(cmd *cobra.Command, tag core.Tag, payload []byte, err error) error {
	if err != nil {
		return err
	}
	store, err := core.OpenStore(storeDir)
	if err != nil {
		return err
	}
	defer store.Close()

	state := core.NewStateFacade(store)
	if applyErr := core.Apply(state, signer, payload); applyErr != nil {
		logrus.WithFields(logrus.Fields{
			"tag":    tag,
			"signer": signer,
			"kind":   core.KindOf(applyErr),
		}).Error("registrycli: transaction rejected")
		return applyErr
	}

	logrus.WithFields(logrus.Fields{
		"tag":    tag,
		"signer": signer,
	}).Info("registrycli: transaction committed")
	return nil
}
