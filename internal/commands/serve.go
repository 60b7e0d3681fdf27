package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/myfinances/internal/logger"
	"github.com/cleared-dev/myfinances/internal/server"
	"github.com/cleared-dev/myfinances/internal/session"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dashboard, budget and trend data as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := opts.openSession()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = sess.Config().Server.Addr
			}
			if !opts.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd.OutOrStdout(), sess, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

// runServe serves until ctx is cancelled, then drains in-flight requests.
func runServe(ctx context.Context, out io.Writer, sess *session.Session, addr string) error {
	log := logger.Get()
	srv := server.New(addr, server.NewRouter(sess, sess.Config().Server))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fmt.Fprintf(out, "Serving %s on http://%s/api (Ctrl-C to stop)\n", sess.Dir(), srv.Addr())
		log.Infow("serving", "addr", srv.Addr(), "dir", sess.Dir())
		return srv.ListenAndServe()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Infow("shutting down", "addr", srv.Addr())
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
