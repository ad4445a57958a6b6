// Package client is a small WebSocket client for the rps-arena server,
// used by cmd/rpsclient and by end-to-end tests.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"rps-arena/internal/api/ws"
	"rps-arena/internal/game"

	"github.com/gorilla/websocket"
)

var ErrUnexpectedEvent = errors.New("unexpected event")

type Client struct {
	conn    *websocket.Conn
	id      string
	writeMu sync.Mutex
}

// Dial connects to url and waits for the server to announce the socket id.
func Dial(ctx context.Context, url string, header http.Header) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	c := &Client{conn: conn}
	env, err := c.Next()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("read connected event: %w", err)
	}
	if env.Event != ws.EventConnected {
		conn.Close()
		return nil, fmt.Errorf("%w: %q, want %q", ErrUnexpectedEvent, env.Event, ws.EventConnected)
	}
	var p ws.ConnectedPayload
	if err := json.Unmarshal(env.Data, &p); err != nil {
		conn.Close()
		return nil, fmt.Errorf("decode connected event: %w", err)
	}
	c.id = p.SocketID
	return c, nil
}

// ID is the connection identifier the server assigned.
func (c *Client) ID() string {
	return c.id
}

func (c *Client) JoinRoom(roomKey string) error {
	return c.send(ws.EventJoinRoom, roomKey)
}

func (c *Client) Play(roomKey string, move game.Move) error {
	return c.send(ws.EventPlayerMove, ws.MovePayload{RoomID: roomKey, Move: move})
}

// Next blocks until the next server event arrives.
func (c *Client) Next() (ws.Envelope, error) {
	var env ws.Envelope
	err := c.conn.ReadJSON(&env)
	return env, err
}

// NextWithin is Next with a read deadline.
func (c *Client) NextWithin(d time.Duration) (ws.Envelope, error) {
	_ = c.conn.SetReadDeadline(time.Now().Add(d))
	defer c.conn.SetReadDeadline(time.Time{})
	return c.Next()
}

func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	c.writeMu.Unlock()
	return c.conn.Close()
}

func (c *Client) send(event string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event, err)
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(ws.Envelope{Event: event, Data: raw})
}

var moves = []game.Move{game.Rock, game.Paper, game.Scissors}

// RandomMove picks one of the three moves uniformly.
func RandomMove(r *rand.Rand) game.Move {
	return moves[r.Intn(len(moves))]
}
