package command

import (
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/cayleygraph/skos/clog"
	"github.com/cayleygraph/skos/internal/config"
	chttp "github.com/cayleygraph/skos/internal/http"
)

func newHTTPCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http [flags] <file or URL>...",
		Short: "Serve the loaded entities on the given host and port.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := getContext()
			defer cancel()
			l, err := e.load(ctx, args)
			if err != nil {
				return err
			}
			addr := e.cfg.Address()
			phost := addr
			if host, port, err := net.SplitHostPort(addr); err == nil && (host == "" || host == "0.0.0.0") {
				phost = net.JoinHostPort("localhost", port)
			}
			clog.Infof("listening on %s, API at http://%s/api/v1/entities", addr, phost)
			srv := &http.Server{Addr: addr, Handler: chttp.NewRouter(l)}
			go func() {
				<-ctx.Done()
				srv.Close()
			}()
			if err = srv.ListenAndServe(); err == http.ErrServerClosed {
				return nil
			}
			return err
		},
	}
	cmd.Flags().String("host", "127.0.0.1", "host to listen on")
	cmd.Flags().Int("port", 64280, "port to listen on")
	e.v.BindPFlag(config.KeyHTTPHost, cmd.Flags().Lookup("host"))
	e.v.BindPFlag(config.KeyHTTPPort, cmd.Flags().Lookup("port"))
	return cmd
}
