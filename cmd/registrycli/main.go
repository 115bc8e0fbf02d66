// Command registrycli is the operator CLI for the asset registry: it builds
// and applies one transaction payload per invocation against a local,
// WAL-backed store. It stands in for the submission-and-signing collaborator
// described as external to the core processor.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("registrycli: .env not loaded")
	}

	if err := Execute(); err != nil {
		logrus.WithError(err).Error("registrycli: command failed")
		os.Exit(1)
	}
}
