// Package broadcast owns the live supplier catalog using the actor pattern.
//
// The Broadcaster re-randomizes stock on a fixed tick (10s by default) and fans the
// full snapshot out to registered subscribers. One goroutine + command channel owns
// the subscriber set (no mutexes); the snapshot itself is swapped through an atomic
// pointer so queries never wait on a tick. Subscribers must not block on Send.
package broadcast
