package broadcast

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/adapter/metrics"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/domain"
)

const (
	// DefaultTickInterval is the period between two catalog refreshes.
	DefaultTickInterval = 10 * time.Second
	// DefaultMaxSubscribers bounds the subscriber set.
	DefaultMaxSubscribers = 1000

	commandTimeout   = 5 * time.Second  // Actor command timeout
	stopTimeout      = 10 * time.Second // Graceful shutdown timeout
	inStockThreshold = 0.3
	maxStockLevel    = 10000
)

// ErrStopped is returned by commands issued after Stop.
var ErrStopped = errors.New("broadcaster stopped")

// broadcasterCmd is the command interface for the Broadcaster actor.
type broadcasterCmd interface{ isBroadcasterCmd() }

type baseBroadcasterCmd struct{}

func (baseBroadcasterCmd) isBroadcasterCmd() {}

type registerCmd struct {
	baseBroadcasterCmd
	subscriber   domain.Subscriber
	errorChannel chan error
}

type unregisterCmd struct {
	baseBroadcasterCmd
	subscriberID string
}

type subscriberCountCmd struct {
	baseBroadcasterCmd
	replyChannel chan int
}

type tickCmd struct {
	baseBroadcasterCmd
	replyChannel chan *domain.Snapshot
}

type stopCmd struct {
	baseBroadcasterCmd
}

// Broadcaster owns the live catalog snapshot. A single goroutine refreshes the
// snapshot on a tick and pushes every new snapshot to the registered subscribers.
// Readers load the snapshot through an atomic pointer and never wait on a tick.
type Broadcaster struct {
	cmdCh          chan broadcasterCmd
	clock          clockwork.Clock
	snapshot       atomic.Pointer[domain.Snapshot]
	subscribers    map[string]domain.Subscriber
	rng            *rand.Rand
	metrics        *metrics.BroadcasterMetrics
	done           chan struct{}
	stopTimeout    time.Duration
	maxSubscribers int
	tickInterval   time.Duration
}

// Option configures a Broadcaster.
type Option func(*Broadcaster)

// WithTickInterval overrides DefaultTickInterval.
func WithTickInterval(d time.Duration) Option {
	return func(b *Broadcaster) {
		if d > 0 {
			b.tickInterval = d
		}
	}
}

// WithMaxSubscribers overrides DefaultMaxSubscribers.
func WithMaxSubscribers(n int) Option {
	return func(b *Broadcaster) {
		if n > 0 {
			b.maxSubscribers = n
		}
	}
}

// WithRand sets the source used to re-randomize stock on each tick.
func WithRand(r *rand.Rand) Option {
	return func(b *Broadcaster) {
		if r != nil {
			b.rng = r
		}
	}
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *metrics.BroadcasterMetrics) Option {
	return func(b *Broadcaster) {
		b.metrics = m
	}
}

// NewBroadcaster publishes initial as the first snapshot and starts the tick loop.
func NewBroadcaster(initial []domain.Supplier, clock clockwork.Clock, opts ...Option) *Broadcaster {
	b := &Broadcaster{
		cmdCh:          make(chan broadcasterCmd, 256),
		clock:          clock,
		subscribers:    make(map[string]domain.Subscriber),
		rng:            rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		done:           make(chan struct{}),
		stopTimeout:    stopTimeout,
		maxSubscribers: DefaultMaxSubscribers,
		tickInterval:   DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(b)
	}

	if initial == nil {
		initial = []domain.Supplier{}
	}
	b.snapshot.Store(&domain.Snapshot{Suppliers: initial, Timestamp: clock.Now().UnixMilli()})

	go b.run()
	return b
}

// Register sends the current snapshot to sub as an initial message and adds it
// to the subscriber set. Both happen inside the actor, so sub never misses or
// reorders an update relative to its initial message.
func (b *Broadcaster) Register(sub domain.Subscriber) error {
	errCh := make(chan error, 1)
	if err := b.send(registerCmd{subscriber: sub, errorChannel: errCh}); err != nil {
		return err
	}

	// Use timeout to prevent blocking forever if broadcaster is stuck
	timer := b.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case err := <-errCh:
		return err
	case <-b.done:
		return ErrStopped
	case <-timer.Chan():
		return fmt.Errorf("register command timed out after %v", commandTimeout)
	}
}

// Unregister removes and closes the subscriber with the given id. Unknown ids are ignored.
func (b *Broadcaster) Unregister(subscriberID string) {
	_ = b.send(unregisterCmd{subscriberID: subscriberID})
}

// SubscriberCount returns the number of registered subscribers.
// Returns -1 if the command times out or the broadcaster is stopped.
func (b *Broadcaster) SubscriberCount() int {
	replyCh := make(chan int, 1)
	if err := b.send(subscriberCountCmd{replyChannel: replyCh}); err != nil {
		return -1
	}

	timer := b.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case count := <-replyCh:
		return count
	case <-b.done:
		return -1
	case <-timer.Chan():
		slog.Warn("SubscriberCount timed out", "timeout", commandTimeout)
		return -1
	}
}

// Tick refreshes the catalog immediately and returns the published snapshot.
// It runs through the actor, so it never overlaps with a scheduled tick.
func (b *Broadcaster) Tick() (*domain.Snapshot, error) {
	replyCh := make(chan *domain.Snapshot, 1)
	if err := b.send(tickCmd{replyChannel: replyCh}); err != nil {
		return nil, err
	}

	timer := b.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case snap := <-replyCh:
		return snap, nil
	case <-b.done:
		return nil, ErrStopped
	case <-timer.Chan():
		return nil, fmt.Errorf("tick command timed out after %v", commandTimeout)
	}
}

// Stop shuts down the broadcaster, closing all subscribers.
// Blocks until the broadcaster goroutine has exited or timeout is reached.
func (b *Broadcaster) Stop() {
	if err := b.send(stopCmd{}); err != nil {
		return
	}

	timeout := b.clock.NewTimer(b.stopTimeout)
	defer timeout.Stop()

	select {
	case <-b.done:
		slog.Info("Broadcaster stopped gracefully")
	case <-timeout.Chan():
		slog.Warn("Broadcaster stop timeout exceeded", "timeout", b.stopTimeout)
		if b.metrics != nil {
			b.metrics.StopTimeouts.Inc()
		}
	}
}

func (b *Broadcaster) send(cmd broadcasterCmd) error {
	select {
	case <-b.done:
		return ErrStopped
	default:
	}

	select {
	case b.cmdCh <- cmd:
		return nil
	case <-b.done:
		return ErrStopped
	}
}

func (b *Broadcaster) run() {
	defer close(b.done)

	// Panic recovery wrapper
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Broadcaster panic recovered", "panic", r)
			if b.metrics != nil {
				b.metrics.Panics.Inc()
			}
			b.closeAll()
		}
	}()

	ticker := b.clock.NewTicker(b.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case cmd := <-b.cmdCh:
			switch c := cmd.(type) {
			case registerCmd:
				b.handleRegister(c)
			case unregisterCmd:
				b.handleUnregister(c.subscriberID)
			case subscriberCountCmd:
				c.replyChannel <- len(b.subscribers)
			case tickCmd:
				c.replyChannel <- b.handleTick()
			case stopCmd:
				b.handleStop()
				return
			default:
				slog.Warn("Broadcaster received unknown command type", "command_type", fmt.Sprintf("%T", cmd))
			}
		case <-ticker.Chan():
			b.handleTick()
		}
	}
}

func (b *Broadcaster) handleRegister(c registerCmd) {
	id := c.subscriber.ID()
	if _, exists := b.subscribers[id]; exists {
		c.errorChannel <- fmt.Errorf("subscriber %s already registered", id)
		return
	}

	if len(b.subscribers) >= b.maxSubscribers {
		slog.Warn("Rejecting subscriber: max subscribers reached", "subscriber_id", id, "max_subscribers", b.maxSubscribers)
		c.errorChannel <- fmt.Errorf("%w (%d)", domain.ErrTooManySubscribers, b.maxSubscribers)
		return
	}

	data, err := encode(domain.MessageTypeInitial, b.snapshot.Load())
	if err != nil {
		c.errorChannel <- err
		return
	}
	if err := c.subscriber.Send(data); err != nil {
		c.errorChannel <- fmt.Errorf("send initial snapshot: %w", err)
		return
	}

	b.subscribers[id] = c.subscriber
	if b.metrics != nil {
		b.metrics.Subscribers.Set(float64(len(b.subscribers)))
	}

	slog.Debug("Subscriber registered", "subscriber_id", id, "total_subscribers", len(b.subscribers))
	c.errorChannel <- nil
}

func (b *Broadcaster) handleUnregister(id string) {
	sub, exists := b.subscribers[id]
	if !exists {
		return
	}

	sub.Close()
	delete(b.subscribers, id)
	if b.metrics != nil {
		b.metrics.Subscribers.Set(float64(len(b.subscribers)))
	}

	slog.Debug("Subscriber unregistered", "subscriber_id", id, "remaining_subscribers", len(b.subscribers))
}

func (b *Broadcaster) handleTick() *domain.Snapshot {
	tickStart := b.clock.Now()

	next := b.refresh(b.snapshot.Load(), tickStart)
	b.snapshot.Store(next)

	if b.metrics != nil {
		b.metrics.Ticks.Inc()
		b.metrics.LastTick.Set(float64(next.Timestamp) / 1000)
	}

	if len(b.subscribers) > 0 {
		b.fanOut(next)
	}

	if b.metrics != nil {
		b.metrics.TickDuration.Observe(b.clock.Since(tickStart).Seconds())
	}
	return next
}

// refresh builds a complete new snapshot from prev. Only the stock fields change.
func (b *Broadcaster) refresh(prev *domain.Snapshot, now time.Time) *domain.Snapshot {
	nowMs := now.UnixMilli()
	suppliers := make([]domain.Supplier, len(prev.Suppliers))
	for i, s := range prev.Suppliers {
		s.InStock = b.rng.Float64() > inStockThreshold
		s.StockLevel = int(b.rng.Float64() * maxStockLevel)
		s.LastStockCheck = nowMs
		suppliers[i] = s
	}
	return &domain.Snapshot{Suppliers: suppliers, Timestamp: nowMs}
}

func (b *Broadcaster) fanOut(snap *domain.Snapshot) {
	data, err := encode(domain.MessageTypeUpdate, snap)
	if err != nil {
		slog.Error("Failed to marshal broadcast message", "error", err)
		return
	}

	var failed []string
	for id, sub := range b.subscribers {
		if err := sub.Send(data); err != nil {
			slog.Warn("Dropping subscriber after failed push", "subscriber_id", id, "error", err)
			failed = append(failed, id)
		}
	}

	for _, id := range failed {
		if b.metrics != nil {
			b.metrics.DeliveryFailures.Inc()
		}
		b.handleUnregister(id)
	}
}

func (b *Broadcaster) handleStop() {
	slog.Info("Broadcaster shutting down", "subscribers", len(b.subscribers))
	b.closeAll()
	slog.Info("Broadcaster shutdown complete")
}

// closeAll closes every subscriber. Used during panic recovery and graceful shutdown.
func (b *Broadcaster) closeAll() {
	for id, sub := range b.subscribers {
		sub.Close()
		delete(b.subscribers, id)
	}
	if b.metrics != nil {
		b.metrics.Subscribers.Set(0)
	}
}

func encode(t domain.MessageType, snap *domain.Snapshot) ([]byte, error) {
	data, err := json.Marshal(domain.NewCatalogMessage(t, snap))
	if err != nil {
		return nil, fmt.Errorf("marshal %s message: %w", t, err)
	}
	return data, nil
}
