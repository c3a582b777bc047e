// Package main is the entry point for the bt-roller command
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/bt-ship-roller/internal/config"
	"github.com/KirkDiggler/bt-ship-roller/internal/prompt"
)

var (
	cfgFile string
	cfg     *config.Config
)

// flagKeys maps config keys to the flags that can set them
var flagKeys = map[string]string{
	"log.level":      "log-level",
	"server.port":    "port",
	"server.address": "address",
	"server.watch":   "watch",
	"session.store":  "session-store",
}

var rootCmd = &cobra.Command{
	Use:   "bt-roller",
	Short: "BattleTech JumpShip and DropShip class roller",
	Long: `bt-roller rolls JumpShip and DropShip classes from weighted random tables.
Run without a subcommand for the interactive menu.`,
	PersistentPreRunE: loadConfig,
	RunE:              runMenu,
	SilenceUsage:      true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .bt-roller.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(jumpshipCmd)
	rootCmd.AddCommand(dropshipCmd)
	rootCmd.AddCommand(primitiveCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(clientCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	v := config.NewViper(cfgFile)
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = loaded

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// bindFlags lets explicitly set flags win over file and env values
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

func runMenu(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := prompt.New(&prompt.Config{
		In:     os.Stdin,
		Out:    cmd.OutOrStdout(),
		Roller: a.service,
	})
	if err != nil {
		return err
	}
	return p.Menu(ctx)
}
