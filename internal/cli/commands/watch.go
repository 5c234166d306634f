package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/tally/internal/logging"
	"github.com/ccollicutt/tally/pkg/config"
	"github.com/ccollicutt/tally/pkg/parser"
)

// DefaultDebounce is how long a file must stay quiet before it is re-summed.
const DefaultDebounce = 200 * time.Millisecond

// WatchOptions holds command-line options for the watch command.
type WatchOptions struct {
	Encoding string
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-total a file every time it changes",
		Long: `Print the total of a local file, then print it again every time the file
is written, until interrupted. Malformed content is reported and watching
continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Encoding, "encoding", "", "Charset of the file (e.g. latin1)")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", DefaultDebounce, "Quiet period before re-summing")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, opts *WatchOptions) error {
	setupLogging(cmd, config.LogConfig{})
	return watchFile(commandContext(cmd), args[0], cmd.OutOrStdout(), opts)
}

// watchFile reports the total of path to w now and after every change until
// ctx is done. The parent directory is watched so editors that replace the
// file on save are followed.
func watchFile(ctx context.Context, path string, w io.Writer, opts *WatchOptions) error {
	log := logging.Named("watch")

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	report := func() {
		total, err := sumFile(abs, opts.Encoding)
		stamp := time.Now().Format("15:04:05")
		if err != nil {
			fmt.Fprintf(w, "%s %s: %v\n", stamp, path, err)
			return
		}
		fmt.Fprintf(w, "%s %s: total %d\n", stamp, path, total)
	}

	report()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug().Str("op", event.Op.String()).Str("file", event.Name).Msg("change detected")
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")

		case <-timer.C:
			report()
		}
	}
}

func sumFile(path, encoding string) (int64, error) {
	src, err := parser.OpenFile(path, parser.WithEncoding(encoding))
	if err != nil {
		return 0, err
	}
	defer src.Close()

	res, err := parser.Sum(src)
	if err != nil {
		return 0, err
	}
	return res.Total, nil
}
