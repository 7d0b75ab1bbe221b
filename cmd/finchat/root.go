package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"finchat/internal/config"
	"finchat/internal/logging"
	"finchat/internal/server"
	"finchat/internal/svc"
)

var verbose bool

// SetupRootCmd configures the root command. Running the bare binary
// starts the server.
func SetupRootCmd(c *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "finchat",
		Short: "finchat - conversational financial advisory service",
		Long: `finchat serves a conversational financial advisory API: streaming
chat with conversation memory, prompt management, and financial
strategy and lifeplan generation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*c)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(serveCmd(c))
	return rootCmd
}

func serveCmd(c *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*c)
		},
	}
}

func runServe(c config.Config) error {
	if verbose {
		logging.EnableDebug()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived signal: %v - shutting down...\n", sig)
		cancel()
	}()

	svcCtx, err := svc.NewServiceContext(c)
	if err != nil {
		return err
	}
	defer svcCtx.Close()

	return server.Run(ctx, c, svcCtx)
}
