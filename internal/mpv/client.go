// Package mpv drives an mpv process over its JSON IPC socket and exposes
// it as the player and output surface of a video sink.
package mpv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Taro3/linux-mp4-test/internal/domain"
	"go.uber.org/zap"
)

const (
	commandTimeout = 2 * time.Second
	dialRetries    = 20
	dialDelay      = 100 * time.Millisecond
)

var (
	// ErrClosed is returned by a client or process that has been shut down
	ErrClosed = errors.New("mpv connection closed")
	// ErrNotAttached is returned when a surface is used with a foreign player
	ErrNotAttached = errors.New("surface not attached to an mpv player")
	// ErrCommand wraps error replies from mpv
	ErrCommand = errors.New("mpv command failed")
)

// Event is an asynchronous message from mpv
type Event struct {
	Name string `json:"event"`
	// ID is the observer id of a property-change event
	ID       int64           `json:"id"`
	Property string          `json:"name"`
	Data     json.RawMessage `json:"data"`
}

type request struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

type message struct {
	Event
	RequestID *int64 `json:"request_id"`
	Error     string `json:"error"`
}

type reply struct {
	data json.RawMessage
	err  error
}

// Client is a persistent IPC connection. Replies are matched by request id;
// events are handed to the dispatcher in arrival order.
type Client struct {
	logger     *zap.Logger
	conn       net.Conn
	dispatcher domain.Dispatcher
	handler    func(Event)

	writeMu sync.Mutex
	nextID  atomic.Int64

	mu      sync.Mutex
	pending map[int64]chan reply
	events  []Event
	notify  chan struct{}

	closed    chan struct{}
	closeOnce sync.Once
}

// Dial connects to the socket at path, retrying while mpv starts up.
// handler runs through dispatcher for every event received.
func Dial(
	ctx context.Context,
	logger *zap.Logger,
	path string,
	dispatcher domain.Dispatcher,
	handler func(Event),
) (*Client, error) {
	var (
		conn net.Conn
		err  error
		d    net.Dialer
	)
	for i := 0; i < dialRetries; i++ {
		conn, err = d.DialContext(ctx, "unix", path)
		if err == nil {
			return newClient(logger, conn, dispatcher, handler), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to connect to mpv: %w", ctx.Err())
		case <-time.After(dialDelay):
		}
	}
	return nil, fmt.Errorf("failed to connect to mpv at %s: %w", path, err)
}

func newClient(logger *zap.Logger, conn net.Conn, dispatcher domain.Dispatcher, handler func(Event)) *Client {
	c := &Client{
		logger:     logger,
		conn:       conn,
		dispatcher: dispatcher,
		handler:    handler,
		pending:    make(map[int64]chan reply),
		notify:     make(chan struct{}, 1),
		closed:     make(chan struct{}),
	}
	go c.readLoop()
	go c.forward()
	return c
}

// Command sends a command and waits for its reply
func (c *Client) Command(ctx context.Context, args ...any) (json.RawMessage, error) {
	id := c.nextID.Add(1)
	ch := make(chan reply, 1)

	c.mu.Lock()
	select {
	case <-c.closed:
		c.mu.Unlock()
		return nil, ErrClosed
	default:
	}
	c.pending[id] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	payload, err := json.Marshal(request{Command: args, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to encode command: %w", err)
	}

	c.writeMu.Lock()
	_, err = c.conn.Write(append(payload, '\n'))
	c.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to send command: %w", err)
	}

	select {
	case r := <-ch:
		return r.data, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.closed:
		return nil, ErrClosed
	}
}

// Exec runs a command with the default timeout, discarding the reply data
func (c *Client) Exec(args ...any) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	_, err := c.Command(ctx, args...)
	return err
}

// SetProperty sets an mpv property
func (c *Client) SetProperty(name string, value any) error {
	if err := c.Exec("set_property", name, value); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	return nil
}

// Observe subscribes to changes of a property under the given observer id
func (c *Client) Observe(ctx context.Context, id int64, name string) error {
	if _, err := c.Command(ctx, "observe_property", id, name); err != nil {
		return fmt.Errorf("observe %s: %w", name, err)
	}
	return nil
}

// Done is closed when the connection is gone
func (c *Client) Done() <-chan struct{} {
	return c.closed
}

// Close shuts the connection. Pending commands fail with ErrClosed.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		close(c.closed)
		c.mu.Unlock()
		err = c.conn.Close()
	})
	return err
}

func (c *Client) readLoop() {
	defer c.Close()

	decoder := json.NewDecoder(c.conn)
	for {
		var msg message
		if err := decoder.Decode(&msg); err != nil {
			select {
			case <-c.closed:
			default:
				c.logger.Debug("mpv connection ended", zap.Error(err))
			}
			return
		}

		if msg.RequestID != nil && msg.Event.Name == "" {
			c.resolve(*msg.RequestID, msg)
			continue
		}
		if msg.Event.Name != "" {
			c.enqueue(msg.Event)
		}
	}
}

func (c *Client) resolve(id int64, msg message) {
	c.mu.Lock()
	ch, ok := c.pending[id]
	c.mu.Unlock()
	if !ok {
		return
	}

	r := reply{data: msg.Data}
	if msg.Error != "" && msg.Error != "success" {
		r.err = fmt.Errorf("%w: %s", ErrCommand, msg.Error)
	}
	ch <- r
}

// enqueue never blocks, so replies keep flowing while the UI loop is busy
func (c *Client) enqueue(ev Event) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
}

func (c *Client) forward() {
	for {
		select {
		case <-c.closed:
			return
		case <-c.notify:
		}

		c.mu.Lock()
		batch := c.events
		c.events = nil
		c.mu.Unlock()

		for _, ev := range batch {
			ev := ev
			if !c.dispatcher.Post(func() { c.handler(ev) }) {
				c.logger.Debug("Dropped mpv event, loop stopped", zap.String("event", ev.Name))
				return
			}
		}
	}
}
