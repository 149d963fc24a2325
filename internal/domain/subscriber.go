package domain

// Subscriber receives catalog pushes. Send must not block: it either queues the
// message or reports ErrSubscriberClosed / ErrSubscriberSlow.
type Subscriber interface {
	ID() string
	Send(data []byte) error
	Close()
}
