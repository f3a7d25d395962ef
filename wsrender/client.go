package wsrender

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandelbro"
)

// DefaultReadLimit bounds the size of a single image frame accepted by a Client.
const DefaultReadLimit = headerSize + 3*DefaultMaxPixels

// Client renders on a remote Server. Calls are serialized over the one connection.
type Client struct {
	conn      *websocket.Conn
	timeout   time.Duration
	readLimit int64

	mu sync.Mutex
}

var _ mandel.Renderer = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout bounds each Render round trip. Zero means no limit.
// An expired round trip closes the connection.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithReadLimit sets the largest image frame the client accepts, in bytes.
func WithReadLimit(n int64) ClientOption {
	return func(c *Client) {
		c.readLimit = n
	}
}

// Dial connects to a Server at url (ws:// or wss://).
func Dial(ctx context.Context, url string, opts ...ClientOption) (*Client, error) {
	c := &Client{readLimit: DefaultReadLimit}
	for _, opt := range opts {
		opt(c)
	}

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket.Dial: %w", err)
	}
	conn.SetReadLimit(c.readLimit)
	c.conn = conn
	return c, nil
}

// Render sends one request and waits for the image.
func (c *Client) Render(v mandel.Viewport, maxIter int, bound float64) (*mandel.ColorImage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := wsjson.Write(ctx, c.conn, newRequest(v, maxIter, bound)); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}

	typ, data, err := c.conn.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}

	if typ == websocket.MessageText {
		var f Failure
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode failure: %w", err)
		}
		return nil, fmt.Errorf("remote render: %w", f.Err())
	}
	return decodeImage(data)
}

// Close ends the connection.
func (c *Client) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}
