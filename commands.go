package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/km-arc/go-inject/framework/app"
	"github.com/km-arc/go-inject/framework/container"
)

const shutdownTimeout = 5 * time.Second

func newRootCmd() *cobra.Command {
	var envFiles []string
	root := &cobra.Command{
		Use:           "go-inject",
		Short:         "Scoped dependency injection runtime with an inspection server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")

	serve := &serveCmd{envFiles: &envFiles}
	scopes := &scopesCmd{envFiles: &envFiles}
	root.AddCommand(serve.registerFlags(), scopes.registerFlags())
	return root
}

// ── serve ─────────────────────────────────────────────────────────────────────

type serveCmd struct {
	envFiles *[]string
	addr     string
}

func (c *serveCmd) registerFlags() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scope inspection API",
		RunE:  c.run,
	}
	cmd.Flags().StringVar(&c.addr, "addr", "", "listen address (default DEBUG_ADDR)")
	return cmd
}

func (c *serveCmd) run(cmd *cobra.Command, args []string) error {
	a, err := app.New(*c.envFiles...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(c.addr) }()

	select {
	case err := <-errCh:
		_ = a.Shutdown(context.Background())
		return err
	case <-ctx.Done():
	}

	a.Logger().Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Shutdown(sctx)
}

// ── scopes ────────────────────────────────────────────────────────────────────

type scopesCmd struct {
	envFiles *[]string
}

func (c *scopesCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "scopes [chain...]",
		Short: "Open scope chains such as app/session/request and print the forest",
		RunE:  c.run,
	}
}

func (c *scopesCmd) run(cmd *cobra.Command, args []string) error {
	a, err := app.New(*c.envFiles...)
	if err != nil {
		return err
	}
	defer a.Shutdown(context.Background())

	for _, chain := range args {
		if _, err := a.Forest.OpenScopes(strings.Split(chain, "/")...); err != nil {
			return errors.Wrapf(err, "open %q", chain)
		}
	}
	printForest(cmd.OutOrStdout(), a.Forest)
	return nil
}

func printForest(w io.Writer, f *container.Forest) {
	for _, root := range f.Roots() {
		printScope(w, root, 0)
	}
}

func printScope(w io.Writer, s *container.Scope, depth int) {
	info := s.Snapshot()
	fmt.Fprintf(w, "%s%s (%d bindings)\n", strings.Repeat("  ", depth), info.Name, len(info.Bindings))
	for _, c := range s.Children() {
		printScope(w, c, depth+1)
	}
}
