package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "riskstack-cli",
	Short: "Management cli",
	Long:  `The riskstack cli can be used to manage a running riskstack instance.`,
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	viper.SetEnvPrefix("RISKSTACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}
