package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/partydeck/partydeck/internal/games"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn       *websocket.Conn
	send       chan *Message
	playerID   string
	playerName string
	gameID     string
	logger     *log.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.RWMutex
	closeOnce  sync.Once
	arena      Arena
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, arena Arena) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
		arena:  arena,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// PlayerID returns the id assigned at authentication, or ""
func (c *Connection) PlayerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// PlayerName returns the name supplied at authentication
func (c *Connection) PlayerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerName
}

// GameID returns the game this connection has joined, or ""
func (c *Connection) GameID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gameID
}

// SetGame associates this connection with a game
func (c *Connection) SetGame(gameID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gameID = gameID
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "player", c.PlayerID())

	switch msg.Type {
	case MessageTypeAuth:
		var data AuthData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse auth data")
			return
		}
		c.handleAuth(data)

	case MessageTypeCreateGame:
		var data CreateGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse create game data")
			return
		}
		c.handleCreateGame(data)

	case MessageTypeJoinGame:
		var data JoinGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join game data")
			return
		}
		c.handleJoinGame(data)

	case MessageTypeLeaveGame:
		var data LeaveGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse leave game data")
			return
		}
		c.handleLeaveGame(data)

	case MessageTypeListGames:
		c.handleListGames()

	case MessageTypeGameAction:
		var data GameActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse game action data")
			return
		}
		c.handleGameAction(data)

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}

func (c *Connection) authed() (string, bool) {
	id := c.PlayerID()
	if id == "" {
		c.sendError("not_authenticated", "Must authenticate first")
		return "", false
	}
	return id, true
}

func (c *Connection) handleAuth(data AuthData) {
	if data.PlayerName == "" {
		c.sendError("invalid_auth", "Player name required")
		return
	}

	c.mu.Lock()
	if c.playerID == "" {
		c.playerID = uuid.NewString()
	}
	c.playerName = data.PlayerName
	id := c.playerID
	c.mu.Unlock()

	c.logger.Info("Player authenticated", "player", id, "name", data.PlayerName)
	response, _ := NewMessage(MessageTypeAuthResponse, AuthResponseData{
		Success:    true,
		PlayerID:   id,
		PlayerName: data.PlayerName,
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleCreateGame(data CreateGameData) {
	id, ok := c.authed()
	if !ok {
		return
	}

	creator := games.Player{ID: id, Name: c.PlayerName(), Channel: c}
	snap, err := c.arena.Create(data.GameType, creator, data.Private, data.MaxPlayers)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	response, _ := NewMessage(MessageTypeGameCreated, snap)
	_ = c.SendMessage(response)
}

func (c *Connection) handleJoinGame(data JoinGameData) {
	id, ok := c.authed()
	if !ok {
		return
	}

	p := games.Player{ID: id, Name: c.PlayerName(), Channel: c}
	snap, err := c.arena.Join(data.GameID, p)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	c.SetGame(data.GameID)

	response, _ := NewMessage(MessageTypeGameJoined, snap)
	_ = c.SendMessage(response)
}

func (c *Connection) handleLeaveGame(data LeaveGameData) {
	id, ok := c.authed()
	if !ok {
		return
	}

	if err := c.arena.Leave(data.GameID, id); err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	c.SetGame("")

	response, _ := NewMessage(MessageTypeGameLeft, GameLeftData{GameID: data.GameID})
	_ = c.SendMessage(response)
}

func (c *Connection) handleListGames() {
	response, _ := NewMessage(MessageTypeLobby, LobbyData{Games: c.arena.ListPublic()})
	_ = c.SendMessage(response)
}

func (c *Connection) handleGameAction(data GameActionData) {
	id, ok := c.authed()
	if !ok {
		return
	}

	action, err := decodeAction(data)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	if _, err := c.arena.Dispatch(data.GameID, id, action); err != nil {
		c.sendError(errorCode(err), err.Error())
	}
	// No success response; the arena publishes the new state
}
