package walletconnect

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/cyphera/kaia-bot/internal/logger"
)

// GatewayClient implements SignClient against a pairing gateway: a sidecar
// service that owns the relay connection and session keys, and exposes them
// to the bot over a single websocket as JSON-RPC. The gateway multiplexes
// many handshakes and sessions over the one connection.
type GatewayClient struct {
	conn   *websocket.Conn
	logger *zap.Logger

	mu       sync.Mutex
	nextID   uint64
	pending  map[uint64]chan gatewayResponse
	approval map[string]chan approvalEvent
	sessions map[string]*Session
	closed   bool
}

type gatewayRequest struct {
	ID     uint64          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

type gatewayResponse struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *gatewayError   `json:"error,omitempty"`

	// Set on unsolicited events instead of ID.
	Event     string          `json:"event,omitempty"`
	PairingID string          `json:"pairingId,omitempty"`
	Topic     string          `json:"topic,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type gatewayError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *gatewayError) Error() string {
	return fmt.Sprintf("pairing gateway: %s (code %d)", e.Message, e.Code)
}

type approvalEvent struct {
	session *Session
	err     error
}

type connectReply struct {
	PairingID string `json:"pairingId"`
	URI       string `json:"uri"`
}

// DialGateway connects to the pairing gateway and starts the read loop.
func DialGateway(ctx context.Context, gatewayURL string) (*GatewayClient, error) {
	conn, _, err := websocket.Dial(ctx, gatewayURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial pairing gateway: %w", err)
	}
	// Approval waits can idle for minutes between frames.
	conn.SetReadLimit(1 << 20)

	c := &GatewayClient{
		conn:     conn,
		logger:   logger.Log,
		pending:  make(map[uint64]chan gatewayResponse),
		approval: make(map[string]chan approvalEvent),
		sessions: make(map[string]*Session),
	}
	go c.readLoop()
	return c, nil
}

// Close tears the gateway connection down. Pending calls fail.
func (c *GatewayClient) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return c.conn.Close(websocket.StatusNormalClosure, "shutting down")
}

// Connect opens a handshake through the gateway and returns the pairing
// URI plus an approval suspension that resolves when the peer wallet
// approves or rejects.
func (c *GatewayClient) Connect(ctx context.Context, params ConnectParams) (*ConnectResult, error) {
	raw, err := c.call(ctx, "connect", params)
	if err != nil {
		return nil, err
	}

	var reply connectReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("failed to parse connect reply: %w", err)
	}

	events := make(chan approvalEvent, 1)
	c.mu.Lock()
	c.approval[reply.PairingID] = events
	c.mu.Unlock()

	approval := func(ctx context.Context) (*Session, error) {
		defer func() {
			c.mu.Lock()
			delete(c.approval, reply.PairingID)
			c.mu.Unlock()
		}()

		select {
		case ev := <-events:
			if ev.err != nil {
				return nil, ev.err
			}
			c.mu.Lock()
			c.sessions[ev.session.Topic] = ev.session
			c.mu.Unlock()
			return ev.session, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return &ConnectResult{URI: reply.URI, Approval: approval}, nil
}

// Request routes a method call to the peer wallet on an approved session
// and suspends until the peer responds.
func (c *GatewayClient) Request(ctx context.Context, topic, chainID string, call MethodCall) (json.RawMessage, error) {
	return c.call(ctx, "request", map[string]interface{}{
		"topic":   topic,
		"chainId": chainID,
		"request": call,
	})
}

// Disconnect tears a session down on both ends.
func (c *GatewayClient) Disconnect(ctx context.Context, topic, reason string) error {
	_, err := c.call(ctx, "disconnect", map[string]string{
		"topic":  topic,
		"reason": reason,
	})
	c.mu.Lock()
	delete(c.sessions, topic)
	c.mu.Unlock()
	return err
}

// Session returns the locally tracked session for a topic. The gateway
// pushes session_delete events, so absence here means the session is gone.
func (c *GatewayClient) Session(topic string) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[topic]
	return s, ok
}

// call performs one request/response round trip with the gateway.
func (c *GatewayClient) call(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	encoded, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s params: %w", method, err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, fmt.Errorf("pairing gateway connection is closed")
	}
	c.nextID++
	id := c.nextID
	replies := make(chan gatewayResponse, 1)
	c.pending[id] = replies
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	req := gatewayRequest{ID: id, Method: method, Params: encoded}
	if err := wsjson.Write(ctx, c.conn, req); err != nil {
		return nil, fmt.Errorf("failed to send %s to pairing gateway: %w", method, err)
	}

	select {
	case resp := <-replies:
		if resp.Error != nil {
			return nil, resp.Error
		}
		return resp.Result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// readLoop dispatches gateway frames to pending calls and approval waits
// until the connection dies.
func (c *GatewayClient) readLoop() {
	ctx := context.Background()
	for {
		var frame gatewayResponse
		if err := wsjson.Read(ctx, c.conn, &frame); err != nil {
			c.failAll(err)
			return
		}

		if frame.Event != "" {
			c.handleEvent(frame)
			continue
		}

		c.mu.Lock()
		replies, ok := c.pending[frame.ID]
		c.mu.Unlock()
		if !ok {
			c.logger.Warn("gateway reply for unknown call id", zap.Uint64("id", frame.ID))
			continue
		}
		replies <- frame
	}
}

func (c *GatewayClient) handleEvent(frame gatewayResponse) {
	switch frame.Event {
	case "session_approve":
		var session Session
		if err := json.Unmarshal(frame.Payload, &session); err != nil {
			c.dispatchApproval(frame.PairingID, approvalEvent{
				err: fmt.Errorf("failed to parse approved session: %w", err),
			})
			return
		}
		c.dispatchApproval(frame.PairingID, approvalEvent{session: &session})
	case "session_reject":
		var reject gatewayError
		if err := json.Unmarshal(frame.Payload, &reject); err != nil || reject.Message == "" {
			reject.Message = "pairing rejected by wallet"
		}
		c.dispatchApproval(frame.PairingID, approvalEvent{err: &reject})
	case "session_delete":
		c.mu.Lock()
		delete(c.sessions, frame.Topic)
		c.mu.Unlock()
		c.logger.Info("session deleted by peer", zap.String("topic", frame.Topic))
	default:
		c.logger.Debug("ignoring gateway event", zap.String("event", frame.Event))
	}
}

func (c *GatewayClient) dispatchApproval(pairingID string, ev approvalEvent) {
	c.mu.Lock()
	events, ok := c.approval[pairingID]
	c.mu.Unlock()
	if !ok {
		c.logger.Warn("approval event for unknown pairing", zap.String("pairing_id", pairingID))
		return
	}
	select {
	case events <- ev:
	default:
	}
}

// failAll fails every pending call and approval wait after the connection
// is lost.
func (c *GatewayClient) failAll(cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.logger.Error("pairing gateway connection lost", zap.Error(cause))
	}
	c.closed = true

	err := fmt.Errorf("pairing gateway connection lost: %w", cause)
	for id, replies := range c.pending {
		select {
		case replies <- gatewayResponse{ID: id, Error: &gatewayError{Message: err.Error()}}:
		default:
		}
	}
	for _, events := range c.approval {
		select {
		case events <- approvalEvent{err: err}:
		default:
		}
	}
	c.pending = make(map[uint64]chan gatewayResponse)
	c.approval = make(map[string]chan approvalEvent)
}
