package commands

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/database/repositories"
	"github.com/riskstack/riskstack/internal/shared"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func NewSeedCommand() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed <username>",
		Short: "Create a user with a fresh API token",
		Long:  "Creates the user if it does not exist and issues a new API token. The token is printed exactly once; only its hash is stored.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shared.LoadConfig() // nolint

			username := args[0]
			firstName, _ := cmd.Flags().GetString("first-name") // nolint:errcheck
			lastName, _ := cmd.Flags().GetString("last-name")   // nolint:errcheck
			email, _ := cmd.Flags().GetString("email")          // nolint:errcheck

			db, err := shared.DatabaseFactory()
			if err != nil {
				return errors.Wrap(err, "could not connect to database")
			}

			userRepository := repositories.NewUserRepository(db)

			user, err := userRepository.ReadByUsername(username)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				user = models.User{
					Username:  username,
					FirstName: firstName,
					LastName:  lastName,
					Email:     email,
				}
			} else if err != nil {
				return errors.Wrap(err, "could not read user")
			}

			token := base64.StdEncoding.EncodeToString([]byte(uuid.New().String()))
			user.TokenHash = user.HashToken(token)

			if err := userRepository.Save(nil, &user); err != nil {
				return errors.Wrap(err, "could not save user")
			}

			// the only place the plain token ever shows up
			fmt.Printf("API token for %s: %s\n", username, token)
			return nil
		},
	}

	seedCmd.Flags().String("first-name", "", "first name of the user")
	seedCmd.Flags().String("last-name", "", "last name of the user")
	seedCmd.Flags().String("email", "", "email address of the user")

	return seedCmd
}
