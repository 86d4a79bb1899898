// Package redisevents relays navigation lifecycle events between processes
// over Redis pub/sub.
//
// A backend that completes a navigation or wants to push a flash payload to
// every replica publishes the event; each replica runs a Subscriber that
// emits received events into its local event bus, where the bridge picks
// them up:
//
//	client, err := redisevents.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	sub, _ := redisevents.NewSubscriber(client, cfg.Channel, bus)
//	go sub.Run(ctx)
//
//	pub, _ := redisevents.NewPublisher(client, cfg.Channel)
//	_, err = pub.Publish(ctx, bridge.Event{Name: bridge.EventFlash, Flash: payload})
//
// Connect retries the initial ping using the settings in Config, which are
// read from REDIS_* and FLASHKIT_REDIS_CHANNEL environment variables.
package redisevents
