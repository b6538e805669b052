package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohan-flutterint/graphviz/pkg/cache"
	"github.com/rohan-flutterint/graphviz/pkg/errors"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the conversion cache",
	}
	cmd.AddCommand(c.cacheClearCommand(), c.cacheInfoCommand(), c.cachePathCommand())
	return cmd
}

// cacheClearCommand clears the configured backend. With Redis this removes
// the entries shared with running servers.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if c.Config.Cache.Backend == backendNone {
				printInfo("Cache is disabled")
				return nil
			}

			store, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(ctx); err != nil {
				return errors.Wrap(errors.ErrCodeCacheFailed, err, "clear %s cache", c.Config.Cache.Backend)
			}
			printSuccess("Cleared %s cache", c.Config.Cache.Backend)
			c.printCacheLocation()
			return nil
		},
	}
}

// cacheInfoCommand prints the backend in use. For the file backend it also
// counts entries and their size.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the cache backend and usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			fmt.Fprintf(c.Out, "backend: %s\nttl:     %s\n", c.Config.Cache.Backend, time.Duration(c.Config.Cache.TTL))
			switch c.Config.Cache.Backend {
			case backendRedis:
				fmt.Fprintf(c.Out, "server:  %s\n", c.Config.Redis.Addr)
			case backendFile:
				dir, err := cacheDir()
				if err != nil {
					return err
				}
				fc, err := cache.NewFileCache(dir)
				if err != nil {
					return errors.Wrap(errors.ErrCodeCacheFailed, err, "open cache %s", dir)
				}
				n, size, err := fc.Usage(ctx)
				if err != nil {
					return errors.Wrap(errors.ErrCodeCacheFailed, err, "scan cache %s", dir)
				}
				fmt.Fprintf(c.Out, "dir:     %s\nentries: %d (%s)\n", dir, n, formatBytes(int(size)))
			}
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.Out, dir)
			return nil
		},
	}
}

func (c *CLI) printCacheLocation() {
	switch c.Config.Cache.Backend {
	case backendFile:
		if dir, err := cacheDir(); err == nil {
			printDetail("Directory: %s", dir)
		}
	case backendRedis:
		printDetail("Server: %s", c.Config.Redis.Addr)
	}
}
