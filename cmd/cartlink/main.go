// Package main is the cartlink command line client.
//
// Each command dispatches one or more store operations against the backend and
// prints the resulting slice state as JSON on stdout. Logs go to stderr.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mhizterpaul/cartlink/internal/infrastructure/config"
	"github.com/mhizterpaul/cartlink/internal/infrastructure/logger"
	"github.com/spf13/cobra"
)

// Version information (populated at build time)
var (
	version   = "dev"
	buildTime = "unknown"
)

// Global flags
var (
	configPath string
	verbose    bool
	timeout    time.Duration
)

// rt is the app built for the running command.
var (
	rt            *app
	cancelTimeout context.CancelFunc = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "cartlink",
	Short: "Command line client for the cartlink storefront backend",
	Long: `cartlink talks to the storefront REST backend as a merchant or a customer.

Sign in once with 'cartlink login'. The token is kept in the configured
token store and sent with every later command.

Configuration is read from config.toml in ., $HOME/.cartlink or /etc/cartlink
(or --config), and CARTLINK_* environment variables override it.`,
	Version:       version + " (" + buildTime + ")",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		cancelTimeout = cancel

		rt, err = newApp(ctx, cfg, verbose)
		if err != nil {
			cmd.SetContext(ctx)
			return err
		}
		cmd.SetContext(logger.WithContext(ctx, rt.log))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config.toml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Deadline for the whole command")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(passwordCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(reviewsCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(refundsCmd)
	rootCmd.AddCommand(complaintsCmd)
	rootCmd.AddCommand(trackCmd)
}

// run executes the command tree and releases the app, whether or not the command failed.
func run(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	defer func() {
		cancelTimeout()
		if rt != nil {
			rt.close(ctx)
			rt = nil
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
