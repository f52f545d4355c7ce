package commands

import (
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/shared"
	"github.com/spf13/cobra"
)

func NewWaitForDBCommand() *cobra.Command {
	waitCmd := &cobra.Command{
		Use:   "wait-for-db",
		Short: "Block until the database accepts connections",
		Long:  "Retries the database connection until it succeeds or the retry budget runs out. Useful as a container entrypoint guard.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shared.LoadConfig() // nolint

			retries, err := cmd.Flags().GetInt("retries")
			if err != nil {
				return err
			}

			for i := 0; i < retries; i++ {
				if _, err := shared.DatabaseFactory(); err == nil {
					slog.Info("database is reachable")
					return nil
				}
				slog.Info("database not ready yet, retrying", "attempt", i+1, "of", retries)
				time.Sleep(2 * time.Second)
			}

			return errors.New("database did not become reachable")
		},
	}

	waitCmd.Flags().Int("retries", 30, "number of connection attempts before giving up")

	return waitCmd
}
