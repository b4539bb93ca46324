package command

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cayleygraph/skos"
	"github.com/cayleygraph/skos/cache"
	_ "github.com/cayleygraph/skos/cache/all"
	"github.com/cayleygraph/skos/clog"
	"github.com/cayleygraph/skos/clog/glog"
	"github.com/cayleygraph/skos/clog/zap"
	"github.com/cayleygraph/skos/fetch"
	"github.com/cayleygraph/skos/graph"
	"github.com/cayleygraph/skos/internal/config"
)

// Filled in by `go build ldflags="-X github.com/cayleygraph/skos/cmd/skos/command.Version=ver"`.
var (
	BuildDate string
	Version   string
)

const (
	flagConfig = "config"
	flagLog    = "log"
	flagV      = "verbose"
	flagFormat = "format"
)

// env holds what every subcommand shares: the viper instance its flags are
// bound to and the decoded config.
type env struct {
	v   *viper.Viper
	cfg *config.Config
	// sync flushes the log backend, if it buffers.
	sync func() error
}

func NewRootCmd() *cobra.Command {
	e := &env{v: config.New()}
	root := &cobra.Command{
		Use:          "skos",
		Short:        "Load SKOS taxonomies and follow their external references.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := e.setupLog(cmd); err != nil {
				return err
			}
			file, _ := cmd.Flags().GetString(flagConfig)
			cfg, err := config.Load(e.v, file)
			if err != nil {
				return err
			}
			e.cfg = cfg
			if file != "" {
				clog.Infof("using config file %q", file)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e.sync != nil {
				e.sync()
			}
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.String(flagConfig, "", "path to an explicit configuration file (YAML, JSON or TOML)")
	pf.String(flagLog, "glog", `log backend ("glog" or "zap")`)
	pf.IntP(flagV, "v", 0, "log verbosity level")

	pf.String("depth", "0", `number of external reference hops to follow ("inf" for no limit)`)
	pf.Bool("flat", false, "expose every resolved entity, not only the ones of the input")
	pf.String("normalize", "default", `URI normalizer (`+fmt.Sprint(skos.Normalizers())+`)`)
	pf.String(flagFormat, "", "input format instead of auto-detection")
	pf.Duration("timeout", fetch.DefaultTimeout, "timeout of a single fetch")
	pf.String("cache", "", fmt.Sprintf("document cache backend %v", cache.Backends()))
	pf.String("cache_addr", "", "address or path of the document cache")
	pf.Int("cache_size", 0, "number of documents the memory cache holds")

	e.v.BindPFlag(config.KeyLoadDepth, pf.Lookup("depth"))
	e.v.BindPFlag(config.KeyLoadFlat, pf.Lookup("flat"))
	e.v.BindPFlag(config.KeyLoadNormalize, pf.Lookup("normalize"))
	e.v.BindPFlag(config.KeyLoadFormat, pf.Lookup(flagFormat))
	e.v.BindPFlag(config.KeyFetchTimeout, pf.Lookup("timeout"))
	e.v.BindPFlag(config.KeyCacheBackend, pf.Lookup("cache"))
	e.v.BindPFlag(config.KeyCacheAddress, pf.Lookup("cache_addr"))
	e.v.BindPFlag(config.KeyCacheSize, pf.Lookup("cache_size"))

	root.AddCommand(
		newLoadCmd(e),
		newConvertCmd(e),
		newHTTPCmd(e),
		newReplCmd(e),
		newVersionCmd(),
	)
	return root
}

func (e *env) setupLog(cmd *cobra.Command) error {
	name, _ := cmd.Flags().GetString(flagLog)
	switch name {
	case "", "glog":
		glog.Use()
	case "zap":
		l, err := zap.Use(false)
		if err != nil {
			return err
		}
		e.sync = l.Sync
	default:
		return fmt.Errorf("unknown log backend %q", name)
	}
	if v, _ := cmd.Flags().GetInt(flagV); v > 0 {
		clog.SetV(v)
	}
	return nil
}

// fetcher returns the document fetcher described by the config, with its
// cache if one is configured. The returned function closes the cache.
func (e *env) fetcher() (graph.Fetcher, func() error, error) {
	f := fetch.Default()
	f.Client.Timeout = e.cfg.Fetch.Timeout
	f.UserAgent = e.cfg.Fetch.UserAgent
	nop := func() error { return nil }
	if e.cfg.Cache.Backend == "" {
		return f, nop, nil
	}
	opts := cache.Options{}
	if e.cfg.Cache.Size > 0 {
		opts["size"] = e.cfg.Cache.Size
	}
	store, err := cache.Open(e.cfg.Cache.Backend, e.cfg.Cache.Address, opts)
	if err != nil {
		return nil, nil, err
	}
	clog.Infof("caching documents in %s %q", e.cfg.Cache.Backend, e.cfg.Cache.Address)
	return fetch.Cached(f, store), store.Close, nil
}

// load reads the input documents and resolves their references.
func (e *env) load(ctx context.Context, files []string) (*skos.Loader, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no input documents")
	}
	opts, err := e.cfg.Options()
	if err != nil {
		return nil, err
	}
	f, closeCache, err := e.fetcher()
	if err != nil {
		return nil, err
	}
	defer closeCache()
	opts.Fetcher = f

	input := fetch.Default()
	input.Client.Timeout = e.cfg.Fetch.Timeout
	input.UserAgent = e.cfg.Fetch.UserAgent
	input.Format = e.cfg.Load.Format

	start := time.Now()
	r := openAll(ctx, input, files)
	defer r.Close()
	l, err := skos.Load(ctx, r, opts)
	if err != nil {
		return nil, err
	}
	clog.Infof("loaded %d entities (%d with references) in %v", l.LenFor(false), l.LenFor(true), time.Since(start))
	return l, nil
}

func getContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	go func() {
		select {
		case <-ch:
		case <-ctx.Done():
		}
		signal.Stop(ch)
		cancel()
	}()
	return ctx, cancel
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Version information.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if Version != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "skos", Version, "built", BuildDate)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "skos snapshot")
			}
			return nil
		},
	}
}
