package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treesearch/pkg/cache"
	tsio "github.com/matzehuels/treesearch/pkg/io"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the search result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached search results",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo(c.stdout, "Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}

			printSuccess(c.stdout, "Cleared %d cached results", count)
			printDetail(c.stdout, "Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(c.stdout, dir)
			return nil
		},
	}
}

// =============================================================================
// Result Cache
// =============================================================================

// resultCache returns the file cache, or a null cache when caching is off
// or the cache directory is unusable.
func (c *CLI) resultCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err == nil {
		var fc *cache.FileCache
		if fc, err = cache.NewFileCache(dir); err == nil {
			return fc
		}
	}
	loggerFromContext(ctx).Warn("result cache disabled", "err", err)
	return cache.NewNullCache()
}

// keyOpts returns the cache key options of a search.
func keyOpts(kind string, g goalSpec, p searchParams) cache.SearchKeyOpts {
	return cache.SearchKeyOpts{
		Kind:        kind,
		Start:       g.Start,
		Goal:        g.Goal,
		Suffix:      g.Suffix,
		Algorithm:   p.Algorithm,
		Order:       p.Order,
		Limit:       p.Limit,
		MaxLimit:    p.MaxLimit,
		All:         p.All,
		StopOnMatch: p.StopOnMatch,
	}
}

// canonicalHash hashes the JSON document produced by write, so the same
// input read from any file format maps to the same cache entries.
func canonicalHash(write func(w io.Writer) error) (string, error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// cached returns the result stored under key, or runs fn and stores its
// result. Failed searches are not stored. Cache errors only cost the
// cache, never the search.
func cached(ctx context.Context, ch cache.Cache, key string, cfg CacheConfig, fn func() (tsio.Result, error)) (tsio.Result, error) {
	logger := loggerFromContext(ctx)

	var res tsio.Result
	hit, err := cache.GetJSON(ctx, ch, key, &res)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}
	if hit {
		logger.Debug("cache hit", "key", key[:min(len(key), 20)])
		res.Cached = true
		return res, nil
	}

	res, err = fn()
	if err != nil {
		return res, err
	}
	if err := cache.SetJSON(ctx, ch, key, res, cfg.TTL); err != nil {
		logger.Warn("cache write failed", "err", err)
	}
	return res, nil
}
