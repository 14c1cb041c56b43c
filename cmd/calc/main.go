package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/calcmaster/internal/cli"
	"github.com/Veraticus/calcmaster/internal/common"
)

var (
	cfgFile string
	version = "dev"

	// interrupts is set by main so the interactive menu can cancel a single
	// prompt on Ctrl+C instead of the whole session.
	interrupts *cli.InterruptHandler
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "calc",
		Short: cli.CalcIcon + " Multi-mode calculator with history and favorites",
		Long: `CalcMaster 360: basic, scientific and financial calculations, unit
conversion, a persisted calculation history and a favorites list.

Run without a command to open the interactive menu.`,
		PersistentPreRunE: initConfig,
		RunE:              runMenu,
		SilenceUsage:      true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/calcmaster/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("data-dir", "", "directory holding history, favorites and currency files (default: data)")
	flags.Int("precision", 0, "decimal places shown in results (default: 6)")
	flags.String("angle-mode", "", "angle mode for trigonometry: degrees or radians (default: degrees)")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))

	// Add commands
	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(unitsCmd())
	rootCmd.AddCommand(financeCmd())
	rootCmd.AddCommand(ratesCmd())
	rootCmd.AddCommand(evalCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(favoritesCmd())
	rootCmd.AddCommand(menuCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// settingFlags override viper keys only when set, so config files and
// environment variables still apply otherwise.
var settingFlags = map[string]string{
	"data-dir":   "data.dir",
	"precision":  "display.precision",
	"angle-mode": "scientific.angle_mode",
}

func main() {
	interrupts = cli.NewInterruptHandler(os.Stdout)
	ctx := interrupts.HandleInterrupts(context.Background())

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, cli.ErrInputClosed) {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	for flag, key := range settingFlags {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			viper.Set(key, f.Value.String())
		}
	}

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/calcmaster", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables, e.g. CALC_DATA_DIR
	viper.SetEnvPrefix("CALC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	return common.SetupLogger(level, viper.GetString("logging.format"))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("calc version %s\n", version)
		},
	}
}
