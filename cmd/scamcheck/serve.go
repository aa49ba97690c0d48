package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/scamcheck/internal/check"
	"github.com/nao1215/scamcheck/internal/session"
	"github.com/nao1215/scamcheck/internal/web"
)

func newServeCmd(getenv env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scam check page in the browser",
		Long: `Serve a local web page with Text, Image and URL tabs for checking content.

The page works without an API key but shows a banner and every check fails
until GEMINI_API_KEY is set. The server listens on loopback by default; the
page has no authentication, so only expose it on a trusted network.`,
		Example: `  scamcheck serve
  scamcheck serve --listen 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, getenv)
		},
	}
	cmd.Flags().StringP("listen", "l", "", "Listen address (default 127.0.0.1:8787)")
	cmd.Flags().Bool("no-fetch", false, "Do not fetch pages for URL checks")
	cmd.Flags().String("proxy", "", "SOCKS5 proxy for page fetches (e.g. 127.0.0.1:9050)")
	cmd.Flags().Bool("tor", false, "Start an embedded Tor daemon for .onion pages (requires tor installed)")
	return cmd
}

func runServe(cmd *cobra.Command, getenv env) error {
	cfg, err := loadConfig(cmd, getenv)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	a, err := newApp(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.ErrOrStderr()
	if !cfg.IsConfigured() {
		fmt.Fprintln(out, "Warning: GEMINI_API_KEY is not set, checks will fail until it is configured")
	}

	sess := session.New(
		check.NewAll(a.classifier, a.checkOptions()...),
		session.WithLogger(a.logger),
		session.WithConfigured(cfg.IsConfigured()),
	)
	srv, err := web.NewServer(sess,
		web.WithLogger(a.logger),
		web.WithMaxTextLength(cfg.MaxTextLength),
		web.WithMaxUploadSize(cfg.MaxImageSize+1024*1024),
	)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.ListenAddr, err)
	}
	if !isLoopback(listener.Addr()) {
		fmt.Fprintf(out, "Warning: listening on %s, the page is reachable from other hosts\n", listener.Addr())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Scam Check is running at http://%s/\n", listener.Addr())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(gctx, listener)
	})
	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			fmt.Fprintln(out, "\nShutting down...")
		}
		return nil
	})
	return g.Wait()
}

// isLoopback reports whether addr is bound to a loopback interface.
func isLoopback(addr net.Addr) bool {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		return false
	}
	return tcp.IP.IsLoopback()
}
