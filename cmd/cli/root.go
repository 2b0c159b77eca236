package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newRootCmd builds the command tree. Settings come from flags, then
// BUDGETLEDGER_* environment variables, then an optional config file.
func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "budgetledger-cli",
		Short:         "Budgetledger CLI tool",
		Long:          `A command line interface for interacting with the budgetledger API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./budgetledger.yaml if present)")
	flags.String("url", "http://localhost:8080", "Base URL of the budgetledger API")
	flags.String("owner", "", "Owner id sent as X-Owner-ID")
	flags.String("token", "", "Bearer token (takes precedence over --owner)")
	flags.Duration("timeout", 10*time.Second, "Request timeout")
	for _, name := range []string{"url", "owner", "token", "timeout"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	api := func() *apiClient {
		return &apiClient{
			baseURL: v.GetString("url"),
			owner:   v.GetString("owner"),
			token:   v.GetString("token"),
			timeout: v.GetDuration("timeout"),
		}
	}

	rootCmd.AddCommand(
		accountsCmd(api),
		movementsCmd(api),
		budgetsCmd(api),
		ledgerCmd(api),
		tokenCmd(),
		tzCmd(),
		migrateCmd(),
	)

	return rootCmd
}

func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("BUDGETLEDGER")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("budgetledger")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}
