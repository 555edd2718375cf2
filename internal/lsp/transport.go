package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

const requestTimeout = 10 * time.Second

// Transport handles low-level JSON-RPC communication with a language server
// over stdin/stdout, demultiplexing responses by request id and forwarding
// server notifications to an optional handler.
type Transport struct {
	stdin     io.WriteCloser
	stdout    io.ReadCloser
	requestID int64
	pending   map[int64]chan json.RawMessage
	onNotify  func(method string, params json.RawMessage)
	mu        sync.RWMutex
	closeOnce sync.Once
	done      chan struct{}
}

// NewTransport creates a transport over the given pipes
func NewTransport(stdin io.WriteCloser, stdout io.ReadCloser) *Transport {
	return &Transport{
		stdin:   stdin,
		stdout:  stdout,
		pending: make(map[int64]chan json.RawMessage),
		done:    make(chan struct{}),
	}
}

// OnNotification registers the handler for server-initiated notifications.
// Must be called before Start.
func (t *Transport) OnNotification(fn func(method string, params json.RawMessage)) {
	t.onNotify = fn
}

// Start begins reading messages from the server
func (t *Transport) Start() {
	go t.readMessages()
}

// Close shuts the transport down; safe to call more than once
func (t *Transport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)
		if t.stdin != nil {
			err = t.stdin.Close()
		}
	})
	return err
}

// serverMessage is the union of JSON-RPC responses and notifications
type serverMessage struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// readMessages reads framed messages from the server's stdout
func (t *Transport) readMessages() {
	for {
		// Read Content-Length header byte by byte until we find \r\n\r\n
		var contentLength int
		var header []byte

		for {
			b := make([]byte, 1)
			if _, err := t.stdout.Read(b); err != nil {
				return
			}
			header = append(header, b[0])

			if len(header) >= 4 && string(header[len(header)-4:]) == "\r\n\r\n" {
				headerStr := string(header)
				if _, err := fmt.Sscanf(headerStr, "Content-Length: %d\r\n\r\n", &contentLength); err != nil {
					continue
				}
				break
			}
		}

		body := make([]byte, contentLength)
		if _, err := io.ReadFull(t.stdout, body); err != nil {
			return
		}

		t.handleMessage(body)
	}
}

// handleMessage routes a decoded message to the pending request channel or
// the notification handler.
func (t *Transport) handleMessage(content []byte) {
	var msg serverMessage
	if err := json.Unmarshal(content, &msg); err != nil {
		return
	}

	if msg.ID == nil {
		if msg.Method != "" && t.onNotify != nil {
			t.onNotify(msg.Method, msg.Params)
		}
		return
	}

	var id int64
	if err := json.Unmarshal(msg.ID, &id); err != nil {
		return
	}

	t.mu.RLock()
	ch, ok := t.pending[id]
	t.mu.RUnlock()

	if ok {
		if msg.Error != nil {
			ch <- msg.Error
		} else {
			ch <- msg.Result
		}
	}
}

// SendRequest sends a JSON-RPC request and waits for the response
func (t *Transport) SendRequest(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := atomic.AddInt64(&t.requestID, 1)

	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	}

	data, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	ch := make(chan json.RawMessage, 1)
	t.mu.Lock()
	t.pending[id] = ch
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		delete(t.pending, id)
		t.mu.Unlock()
	}()

	if err := t.writeMessage(data); err != nil {
		return nil, err
	}

	select {
	case response := <-ch:
		return response, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("request %s cancelled: %w", method, ctx.Err())
	case <-t.done:
		return nil, fmt.Errorf("transport closed while waiting for %s", method)
	case <-time.After(requestTimeout):
		return nil, fmt.Errorf("timeout waiting for response to method %s", method)
	}
}

// SendNotification sends a JSON-RPC notification (no response expected)
func (t *Transport) SendNotification(method string, params any) error {
	notification := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	}

	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	return t.writeMessage(data)
}

// writeMessage writes a message with the LSP Content-Length header
func (t *Transport) writeMessage(data []byte) error {
	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(data))
	if _, err := t.stdin.Write([]byte(header)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if _, err := t.stdin.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	return nil
}
