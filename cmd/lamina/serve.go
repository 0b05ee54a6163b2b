package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lamina-ui/lamina/internal/config"
	"github.com/lamina-ui/lamina/pkg/dom"
	"github.com/lamina-ui/lamina/pkg/live"
	"github.com/lamina-ui/lamina/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var (
		port  int
		host  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve [file.html]",
		Short: "Start the live preview server",
		Long: `Start the preview server. With a file argument, the file is parsed
as an HTML fragment and served as the page; with --watch the file is
polled for changes and connected browsers receive the diff as patches.

Without a file, a built-in welcome page is served.

Examples:
  lamina serve
  lamina serve page.html --watch
  lamina serve page.html --port=8080`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return runServe(file, port, host, watch)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from lamina.yaml)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from lamina.yaml)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Poll the file for changes and push diffs")

	return cmd
}

func runServe(file string, port int, host string, watch bool) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(wd)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}

	var source live.Source
	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return err
		}
		source = fileSource(file)
	} else {
		source = welcomeSource(cfg.Name)
	}

	srv := live.NewServer(cfg, source)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch && file != "" {
		go watchFile(ctx, srv, file)
	}

	success("preview server on http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	if file != "" {
		info("serving %s", file)
	}

	return srv.ListenAndServe(ctx)
}

// fileSource re-reads the file on every render. Parse failures render as
// an error message rather than killing the session.
func fileSource(path string) live.Source {
	return func() *vdom.Node {
		data, err := os.ReadFile(path)
		if err != nil {
			return errorPage(err)
		}
		frag, err := fragmentFromHTML(dom.NewMemoryDocument(), string(data))
		if err != nil {
			return errorPage(err)
		}
		return frag
	}
}

func welcomeSource(name string) live.Source {
	if name == "" {
		name = "lamina"
	}
	return func() *vdom.Node {
		return vdom.Fragment(
			vdom.H1(name),
			vdom.P("The preview server is running. Pass an HTML file to serve it:"),
			vdom.Pre(vdom.Code("lamina serve page.html --watch")),
		)
	}
}

func errorPage(err error) *vdom.Node {
	return vdom.Fragment(
		vdom.H1("render error"),
		vdom.Pre(err.Error()),
	)
}

// watchFile polls the file's mtime and refreshes connected sessions when
// it changes. Polling is good enough for a dev tool and sidesteps
// platform watcher differences.
func watchFile(ctx context.Context, srv *live.Server, path string) {
	var last time.Time
	if st, err := os.Stat(path); err == nil {
		last = st.ModTime()
	}

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st, err := os.Stat(path)
			if err != nil {
				continue
			}
			if mt := st.ModTime(); mt.After(last) {
				last = mt
				srv.Refresh()
			}

		case <-ctx.Done():
			return
		}
	}
}
