// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var ErrSubscriptionClosed = errors.New("subscription closed")

// WebSocketClient maintains event subscriptions against a fullnode's
// websocket endpoint. Writes are serialized; one reader loop dispatches
// incoming notifications to subscription channels.
type WebSocketClient struct {
	conn *websocket.Conn
	log  *zap.Logger

	wl sync.Mutex
	cl sync.Once

	mu      sync.Mutex
	nextID  uint64
	subs    map[uint64]chan json.RawMessage
	pending map[uint64]chan wsResponse

	done chan struct{}
}

// NewWebSocketClient dials the websocket endpoint at [uri] and starts the
// read loop.
func NewWebSocketClient(uri string, log *zap.Logger) (*WebSocketClient, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, resp, err := websocket.DefaultDialer.Dial(uri, nil)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()
	c := &WebSocketClient{
		conn:    conn,
		log:     log,
		subs:    make(map[uint64]chan json.RawMessage),
		pending: make(map[uint64]chan wsResponse),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

type wsNotification struct {
	Method string `json:"method"`
	Params struct {
		Subscription uint64          `json:"subscription"`
		Result       json.RawMessage `json:"result"`
	} `json:"params"`
}

func (c *WebSocketClient) readLoop() {
	defer c.closeSubs()
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			c.log.Debug("websocket read failed", zap.Error(err))
			return
		}
		var note wsNotification
		if err := json.Unmarshal(msg, &note); err != nil || note.Method == "" {
			// Responses to subscribe requests land here too; the
			// subscription id is extracted by the caller in Subscribe.
			c.dispatchResponse(msg)
			continue
		}
		c.mu.Lock()
		ch, ok := c.subs[note.Params.Subscription]
		c.mu.Unlock()
		if !ok {
			continue
		}
		select {
		case ch <- note.Params.Result:
		default:
			c.log.Warn("dropping event: slow subscriber",
				zap.Uint64("subscription", note.Params.Subscription))
		}
	}
}

type wsResponse struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

func (c *WebSocketClient) dispatchResponse(msg []byte) {
	var resp wsResponse
	if err := json.Unmarshal(msg, &resp); err != nil {
		return
	}
	c.mu.Lock()
	ch, ok := c.pending[resp.ID]
	if ok {
		delete(c.pending, resp.ID)
	}
	c.mu.Unlock()
	if ok {
		ch <- resp
	}
}

// Subscription delivers events for one subscribe call until Unsubscribe or
// connection close.
type Subscription struct {
	ID     uint64
	Events <-chan json.RawMessage

	client *WebSocketClient
}

// Unsubscribe cancels the subscription server side and closes Events.
func (s *Subscription) Unsubscribe() error {
	return s.client.unsubscribe(s.ID)
}

// SubscribeEvent opens an event subscription with the given filter (an
// arbitrary JSON-shaped value, e.g. map[string]any{"Sender": addr.String()}).
func (c *WebSocketClient) SubscribeEvent(filter interface{}) (*Subscription, error) {
	resp, err := c.call("suix_subscribeEvent", []interface{}{filter})
	if err != nil {
		return nil, err
	}
	var subID uint64
	if err := json.Unmarshal(resp, &subID); err != nil {
		return nil, fmt.Errorf("malformed subscription id: %w", err)
	}

	ch := make(chan json.RawMessage, 128)
	c.mu.Lock()
	c.subs[subID] = ch
	c.mu.Unlock()
	c.log.Debug("event subscription opened", zap.Uint64("subscription", subID))
	return &Subscription{ID: subID, Events: ch, client: c}, nil
}

func (c *WebSocketClient) unsubscribe(subID uint64) error {
	_, err := c.call("suix_unsubscribeEvent", []interface{}{subID})
	c.mu.Lock()
	if ch, ok := c.subs[subID]; ok {
		delete(c.subs, subID)
		close(ch)
	}
	c.mu.Unlock()
	return err
}

func (c *WebSocketClient) call(method string, params []interface{}) (json.RawMessage, error) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	wait := make(chan wsResponse, 1)
	c.pending[id] = wait
	c.mu.Unlock()

	body, err := json.Marshal(&rpcRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params})
	if err != nil {
		c.dropPending(id)
		return nil, err
	}

	c.wl.Lock()
	err = c.conn.WriteMessage(websocket.TextMessage, body)
	c.wl.Unlock()
	if err != nil {
		c.dropPending(id)
		return nil, err
	}

	select {
	case resp := <-wait:
		if resp.Error != nil {
			return nil, resp.Error
		}
		return resp.Result, nil
	case <-c.done:
		return nil, ErrSubscriptionClosed
	}
}

// dropPending discards the response slot for a call that never made it onto
// the wire.
func (c *WebSocketClient) dropPending(id uint64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *WebSocketClient) closeSubs() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}

// Close tears down the connection; all subscriptions end.
func (c *WebSocketClient) Close() error {
	var err error
	c.cl.Do(func() {
		err = c.conn.Close()
	})
	return err
}
