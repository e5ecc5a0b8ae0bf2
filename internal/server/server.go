// Package server is the WebSocket front door. It upgrades connections,
// translates wire messages into arena calls, and fans arena state
// pushes back out to the connections that should see them.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/partydeck/partydeck/internal/games"
)

// Arena is the slice of the registry the transport layer needs
type Arena interface {
	Create(typeName string, creator games.Player, private bool, maxPlayers int) (games.Snapshot, error)
	Get(id string) (games.Snapshot, error)
	ListPublic() []games.Summary
	Join(id string, p games.Player) (games.Snapshot, error)
	Leave(id, playerID string) error
	Dispatch(id, playerID string, action games.Action) (games.Snapshot, error)
	PrivateView(id, playerID string) (any, error)
}

// Server represents the WebSocket server
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	arena       Arena
}

// NewServer creates a new WebSocket server
func NewServer(addr string, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// SetArena wires the registry in. Must be called before Start.
func (s *Server) SetArena(arena Arena) {
	s.arena = arena
}

// Start starts the WebSocket server
func (s *Server) Start() error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.logger.Info("Starting WebSocket server", "addr", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

// Stop stops the WebSocket server
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return nil
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			_, ok := s.connections[conn]
			if ok {
				delete(s.connections, conn)
			}
			total := len(s.connections)
			s.mu.Unlock()

			if ok {
				// Leaving the game on disconnect keeps rosters honest
				playerID := conn.PlayerID()
				gameID := conn.GameID()
				if playerID != "" && gameID != "" && s.arena != nil {
					s.logger.Info("Cleaning up disconnected player", "player", playerID, "game", gameID)
					_ = s.arena.Leave(gameID, playerID)
				}
				_ = conn.Close()
			}
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s.arena)
	s.register <- client
	client.Start()

	go func() {
		<-client.ctx.Done()
		s.unregister <- client
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// PublishLobby pushes the public game listing to every connection.
// Part of the registry's Broadcaster contract.
func (s *Server) PublishLobby(listing []games.Summary) {
	msg, err := NewMessage(MessageTypeLobby, LobbyData{Games: listing})
	if err != nil {
		s.logger.Error("Failed to create lobby message", "error", err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for conn := range s.connections {
		if conn.PlayerID() == "" {
			continue
		}
		_ = conn.SendMessage(msg)
	}
}

// PublishGame pushes a game snapshot to the roster, followed by each
// member's private view of the same state.
func (s *Server) PublishGame(snap games.Snapshot) {
	msg, err := NewMessage(MessageTypeGameState, snap)
	if err != nil {
		s.logger.Error("Failed to create game state message", "error", err)
		return
	}

	members := make(map[string]bool, len(snap.Players))
	for _, p := range snap.Players {
		members[p.ID] = true
	}

	s.mu.RLock()
	recipients := make([]*Connection, 0, len(members))
	for conn := range s.connections {
		if members[conn.PlayerID()] {
			recipients = append(recipients, conn)
		}
	}
	s.mu.RUnlock()

	for _, conn := range recipients {
		if err := conn.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send game state", "error", err, "player", conn.PlayerID())
			continue
		}
		s.sendPrivateView(conn, snap.ID)
	}

	s.logger.Debug("Broadcasted game state", "game", snap.ID, "recipients", len(recipients))
}

func (s *Server) sendPrivateView(conn *Connection, gameID string) {
	if s.arena == nil {
		return
	}
	view, err := s.arena.PrivateView(gameID, conn.PlayerID())
	if err != nil || view == nil {
		return
	}
	msg, err := NewMessage(MessageTypePrivateState, PrivateStateData{GameID: gameID, View: view})
	if err != nil {
		s.logger.Error("Failed to create private state message", "error", err)
		return
	}
	_ = conn.SendMessage(msg)
}
