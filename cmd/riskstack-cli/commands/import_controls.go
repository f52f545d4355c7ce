package commands

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/core/catalog"
	"github.com/riskstack/riskstack/internal/database/repositories"
	"github.com/riskstack/riskstack/internal/shared"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewImportControlsCommand() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import-controls <framework-code> <catalog-file>",
		Short: "Import a control catalog into a framework",
		Long:  "Reads an OSCAL-style JSON catalog export and creates or updates the framework controls of the given framework. The framework is created if it does not exist yet.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shared.LoadConfig() // nolint

			code := args[0]
			path := args[1]

			elementTypes, err := cmd.Flags().GetStringSlice("element-types")
			if err != nil {
				return err
			}
			frameworkName := viper.GetString("framework-name")
			if name, err := cmd.Flags().GetString("framework-name"); err == nil && name != "" {
				frameworkName = name
			}
			frameworkDescription := viper.GetString("framework-description")
			if description, err := cmd.Flags().GetString("framework-description"); err == nil && description != "" {
				frameworkDescription = description
			}

			db, err := shared.DatabaseFactory()
			if err != nil {
				return errors.Wrap(err, "could not connect to database")
			}

			frameworkRepository := repositories.NewFrameworkRepository(db)
			frameworkControlRepository := repositories.NewFrameworkControlRepository(db)

			framework, frameworkCreated, err := catalog.EnsureFramework(frameworkRepository, code, frameworkName, frameworkDescription)
			if err != nil {
				return err
			}
			if frameworkCreated {
				slog.Info("created framework", "code", code)
			}

			importService := catalog.NewImportService(frameworkControlRepository)
			created, updated, err := importService.ImportCatalog(path, framework, elementTypes)
			if err != nil {
				return errors.Wrap(err, "could not import catalog")
			}

			slog.Info("catalog import finished", "framework", code, "created", created, "updated", updated)
			return nil
		},
	}

	importCmd.Flags().String("framework-name", "", "display name for the framework, updated when it differs")
	importCmd.Flags().String("framework-description", "", "description for the framework, updated when it differs")
	importCmd.Flags().StringSlice("element-types", catalog.DefaultElementTypes, "element types to import from the catalog")

	return importCmd
}
