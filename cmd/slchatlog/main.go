// Command slchatlog parses, tails and imports Second Life chat logs.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "slchatlog",
	Short: "Parse and monitor Second Life chat logs",
	Long: `slchatlog reads the local chat transcript (chat.txt) written by
Second Life viewers and turns every line into a structured event.

Flags can also be set in $HOME/.slchatlog.yaml or through environment
variables prefixed with SLCHATLOG_, e.g. SLCHATLOG_LOG_DIR.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return applyConfig(cmd.Flags())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: $HOME/.slchatlog.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log warnings and debug output to stderr")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".slchatlog")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SLCHATLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		cobra.CheckErr(fmt.Errorf("reading config: %w", err))
	}
}

// applyConfig fills flags the user did not set on the command line from
// the config file and environment. Command line values always win.
func applyConfig(flags *pflag.FlagSet) error {
	var firstErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if firstErr != nil || f.Changed || f.Name == "config" {
			return
		}
		if !viper.IsSet(f.Name) {
			return
		}
		var val string
		switch f.Value.Type() {
		case "stringSlice", "stringArray":
			val = strings.Join(viper.GetStringSlice(f.Name), ",")
		default:
			val = viper.GetString(f.Name)
		}
		if err := flags.Set(f.Name, val); err != nil {
			firstErr = fmt.Errorf("config value for %s: %w", f.Name, err)
		}
	})
	return firstErr
}

// newLogger returns the stderr logger used by all commands. Without
// --verbose only errors are shown.
func newLogger() *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
