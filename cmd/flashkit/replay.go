package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/flashkit"
	"github.com/dmitrymomot/flashkit/pkg/bridge"
	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/redisevents"
)

var errUnknownEvent = errors.New("unknown event")

// maxEventLine bounds a single JSON-lines record.
const maxEventLine = 1 << 20

func replayCmd(configPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Feed a recorded event log through a fresh queue",
		Long: `Read lifecycle events, one JSON object per line, feed them through a
fresh queue and print the resulting notifications in order.

FILE may be "-" for stdin. Blank lines and lines starting with # are skipped.

Example line:
  {"name":"navigation-succeeded","page":{"url":"/items","flash":{"success":"Saved"}}}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			format := logger.WithTextFormatter()
			if asJSON {
				format = logger.WithJSONFormatter()
			}
			log := logger.New(
				logger.WithOutput(cmd.ErrOrStderr()),
				format,
				logger.WithLevel(slog.LevelWarn),
			)
			items, err := replay(cmd.Context(), cfg, log, in)
			if err != nil {
				return err
			}
			return printNotifications(cmd.OutOrStdout(), items, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print notifications as JSON")
	return cmd
}

func replay(ctx context.Context, cfg appConfig, log *slog.Logger, in io.Reader) ([]flash.Notification, error) {
	overrides, err := cfg.Notify.Overrides()
	if err != nil {
		return nil, err
	}
	p, err := flashkit.Install(overrides, flashkit.WithLogger(log))
	if err != nil {
		return nil, err
	}
	defer p.Uninstall()

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxEventLine)

	line := 0
	for sc.Scan() {
		line++
		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 || data[0] == '#' {
			continue
		}
		e, err := redisevents.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !bridge.Known(e.Name) {
			return nil, fmt.Errorf("line %d: %w %q", line, errUnknownEvent, e.Name)
		}
		p.Bus().Emit(ctx, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return p.Notifier().Queue().Items(), nil
}

func printNotifications(w io.Writer, items []flash.Notification, asJSON bool) error {
	if asJSON {
		if items == nil {
			items = []flash.Notification{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	for _, n := range items {
		var b strings.Builder
		fmt.Fprintf(&b, "%-8s %s", n.Color, n.Text)
		fmt.Fprintf(&b, " timeout=%s location=%s closable=%t", n.Timeout, n.Location, n.Closable)
		if n.HasActions() {
			labels := make([]string, len(n.Actions))
			for i, a := range n.Actions {
				labels[i] = a.Label
			}
			fmt.Fprintf(&b, " actions=%s", strings.Join(labels, ","))
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
