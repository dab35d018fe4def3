// Package events provides an in-memory, best-effort pub/sub broker
// for cascade engine state-change notifications.
//
// The broker is topic-agnostic: every published Event is broadcast to
// every subscriber. Publish never blocks on a slow subscriber — a
// full subscriber buffer simply skips that event. There is no
// persistence, replay, or delivery guarantee; nothing in this module
// depends on an event actually reaching a subscriber, since the store
// remains the single source of truth for state.
//
// Subscribe/Unsubscribe manage a per-subscriber buffered channel.
// Start/Stop control the broker's internal broadcast loop.
package events
