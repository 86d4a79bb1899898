package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/flashkit/pkg/bridge"
	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/redisevents"
)

func publishCmd(configPath *string) *cobra.Command {
	var (
		entries []string
		url     string
	)

	cmd := &cobra.Command{
		Use:   "publish EVENT",
		Short: "Publish a lifecycle event to the Redis channel",
		Long: `Publish a lifecycle event to the configured Redis channel so every
"flashkit serve" relaying that channel queues it.

Examples:
  flashkit publish flash-pushed --flash success="Deploy finished"
  flashkit publish navigation-succeeded --url /items --flash info=Reviewed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEvent(args[0], url, entries)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			client, err := redisevents.Connect(cmd.Context(), cfg.Redis)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			pub, err := redisevents.NewPublisher(client, cfg.Redis.Channel)
			if err != nil {
				return err
			}
			n, err := pub.Publish(cmd.Context(), e)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %s to %s (%d receivers)\n", e.Name, cfg.Redis.Channel, n)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&entries, "flash", "f", nil, "Flash entry as key=message, repeatable")
	cmd.Flags().StringVar(&url, "url", "", "Page URL for navigation-succeeded")
	return cmd
}

// buildEvent assembles an event from CLI arguments. Flash entries go on the
// page for navigation-succeeded and on the event itself for flash-pushed.
func buildEvent(name, url string, entries []string) (bridge.Event, error) {
	if !bridge.Known(name) {
		return bridge.Event{}, fmt.Errorf("%w %q", errUnknownEvent, name)
	}

	var payload flash.Payload
	for _, entry := range entries {
		key, msg, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return bridge.Event{}, fmt.Errorf("invalid flash entry %q, want key=message", entry)
		}
		if payload == nil {
			payload = flash.Payload{}
		}
		payload[key] = msg
	}

	e := bridge.Event{Name: name}
	switch name {
	case bridge.EventSuccess:
		e.Page = &bridge.Page{URL: url, Flash: payload}
	case bridge.EventFlash:
		e.Flash = payload
	}
	return e, nil
}
