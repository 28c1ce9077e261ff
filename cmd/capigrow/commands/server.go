package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/capigrow/internal/adapters/mockapi" //nolint:depguard // Served directly by the CLI
	"go.trai.ch/zerr"
)

const shutdownTimeout = 5 * time.Second

func newMockServerCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve the in-memory demo backend",
		Long: "Serve the in-memory demo backend until interrupted. Point the client at it with\n" +
			"CAPIGROW_API_URL=http://<addr>. Sign in as " + mockapi.DemoEmail + " / " + mockapi.DemoPassword +
			"; signups confirm with code " + mockapi.DemoOTP + ".",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", addr)
			}
			return serve(cmd.Context(), ln, cmd)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	return cmd
}

func serve(ctx context.Context, ln net.Listener, cmd *cobra.Command) error {
	srv := &http.Server{
		Handler:           mockapi.New(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Mock API listening on http://%s\n", ln.Addr())

	select {
	case err := <-errc:
		return zerr.Wrap(err, "mock server stopped")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return zerr.Wrap(err, "failed to stop mock server")
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.Wrap(err, "mock server stopped")
	}
	return nil
}
