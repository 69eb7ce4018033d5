// Package events provides the in-memory fan-out primitive shared by the
// lifecycle and push streams.
//
// # Broadcaster
//
// Broadcaster[T] is a multicast event source: every subscriber receives
// its own live copy of each published value over a private buffered
// channel, so consumers never compete for events.
//
//	b := events.NewBroadcaster[int](0, nil)
//	ch, id := b.Subscribe(ctx)
//	b.Publish(42)
//	b.Unsubscribe(id)
//
// Publishes are non-blocking; a subscriber that stops draining its channel
// loses events once its buffer fills, without affecting other subscribers
// or the publisher. There is no replay and no internal history; a
// consumer that needs "current state" must fold the stream itself.
package events
