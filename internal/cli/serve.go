package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pedigraph/pedigraph/internal/api"
	"github.com/pedigraph/pedigraph/pkg/cache"
	"github.com/pedigraph/pedigraph/pkg/pipeline"
	"github.com/pedigraph/pedigraph/pkg/store"
)

const defaultAddr = ":8080"

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string // listen address
	cacheBackend  string // "file", "redis", or "none"
	redisAddr     string // redis address for the redis backend
	redisPassword string
	redisDB       int
	storeBackend  string // "memory" or "mongo"
	mongoURI      string
	mongoDatabase string
}

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pedigraph HTTP API server",
		Long: `Run the pedigraph HTTP API server.

The server exposes layout computation and tree storage over JSON. The memory
store keeps trees for the lifetime of the process; configure --store mongo
for persistence. The redis cache backend shares layout results between
instances; the file backend is per-host.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyServeConfig(&opts, cmd)
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.cacheBackend, "cache", "file", "cache backend: file (default), redis, none")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "redis address (cache=redis)")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "redis password (cache=redis)")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "redis database number (cache=redis)")
	cmd.Flags().StringVar(&opts.storeBackend, "store", "memory", "tree store backend: memory (default), mongo")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI (store=mongo)")
	cmd.Flags().StringVar(&opts.mongoDatabase, "mongo-database", appName, "MongoDB database name (store=mongo)")

	return cmd
}

// applyServeConfig fills unset flags from the [serve] config section.
func (c *CLI) applyServeConfig(opts *serveOpts, cmd *cobra.Command) {
	cfg := c.Config.Serve
	if !cmd.Flags().Changed("addr") && cfg.Addr != "" {
		opts.addr = cfg.Addr
	}
	if !cmd.Flags().Changed("redis-addr") && cfg.RedisAddr != "" {
		opts.redisAddr = cfg.RedisAddr
		if !cmd.Flags().Changed("cache") {
			opts.cacheBackend = "redis"
		}
	}
	if !cmd.Flags().Changed("redis-password") && cfg.RedisPassword != "" {
		opts.redisPassword = cfg.RedisPassword
	}
	if !cmd.Flags().Changed("redis-db") && cfg.RedisDB != 0 {
		opts.redisDB = cfg.RedisDB
	}
	if !cmd.Flags().Changed("mongo-uri") && cfg.MongoURI != "" {
		opts.mongoURI = cfg.MongoURI
		if !cmd.Flags().Changed("store") {
			opts.storeBackend = "mongo"
		}
	}
	if !cmd.Flags().Changed("mongo-database") && cfg.MongoDatabase != "" {
		opts.mongoDatabase = cfg.MongoDatabase
	}
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	serveCache, err := c.newServeCache(opts)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(serveCache, nil, c.Logger)
	defer runner.Close()

	treeStore, err := c.newServeStore(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer treeStore.Close(context.Background())

	server := &http.Server{
		Addr:              opts.addr,
		Handler:           api.NewServer(treeStore, runner, c.Logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving", "addr", opts.addr, "cache", opts.cacheBackend, "store", opts.storeBackend)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// newServeCache builds the cache backend requested by the serve flags.
func (c *CLI) newServeCache(opts serveOpts) (cache.Cache, error) {
	switch opts.cacheBackend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(opts.redisAddr, opts.redisPassword, opts.redisDB)
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend: %q (must be 'file', 'redis', or 'none')", opts.cacheBackend)
	}
}

// newServeStore builds the tree store requested by the serve flags.
func (c *CLI) newServeStore(ctx context.Context, opts serveOpts) (store.TreeStore, error) {
	switch opts.storeBackend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDatabase)
	default:
		return nil, fmt.Errorf("unknown store backend: %q (must be 'memory' or 'mongo')", opts.storeBackend)
	}
}
