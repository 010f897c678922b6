// Package cmd implements the sleekctl CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/sleekshop-go/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "sleekctl",
	Short: "CLI and storefront server for the Sleekshop backend",
	Long: "sleekctl talks to a Sleekshop backend from the terminal.\n" +
		"It browses categories and products, manages carts and users,\n" +
		"runs privileged warehouse and webhook calls, and serves the storefront API.",
	SilenceUsage: true,
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before the config")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().String("lang", "", "language (default from config)")

	for _, name := range []string{"config", "env-file", "output", "lang"} {
		cobra.CheckErr(viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)))
	}

	rootCmd.AddCommand(
		categoriesCmd(),
		productsCmd(),
		searchCmd(),
		sessionCmd(),
		cartCmd(),
		userCmd(),
		ordersCmd(),
		paymentCmd(),
		warehouseCmd(),
		webhooksCmd(),
		serverCmd(),
		serveCmd(),
		versionCmd(),
	)
}

func initConfig() {
	viper.SetEnvPrefix("SLEEKCTL")
	viper.AutomaticEnv()

	// The dotenv file feeds ${VAR} substitution in the YAML config.
	if err := godotenv.Load(viper.GetString("env-file")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Ignoring env file:", err)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

func language() string {
	return viper.GetString("lang")
}
