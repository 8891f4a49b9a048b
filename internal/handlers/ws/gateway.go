package ws

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/lightmatch/internal/common/uuid"
	"github.com/KirkDiggler/lightmatch/internal/services/game"
	"github.com/KirkDiggler/lightmatch/internal/services/messaging"
)

// SessionFactory builds the round controller that drives one connection
type SessionFactory func(profileID string, renderer game.Renderer, audio game.Audio) (game.Service, error)

// ConnectionConfig holds configuration for WebSocket connections
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBufferSize  int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultConnectionConfig returns default WebSocket configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  4096,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendBufferSize:  256,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// Config holds the configuration for the gateway
type Config struct {
	// Connection is DefaultConnectionConfig when left zero
	Connection ConnectionConfig

	// NewSession builds the game for each connection
	NewSession SessionFactory

	// Messaging localizes text sent to clients
	Messaging messaging.Service

	// UUIDGenerator issues profile and connection ids
	UUIDGenerator uuid.Generator
}

// Gateway upgrades HTTP requests to game connections
type Gateway struct {
	mu          sync.RWMutex
	connections map[*Connection]bool

	upgrader   websocket.Upgrader
	config     ConnectionConfig
	newSession SessionFactory
	messaging  messaging.Service
	uuid       uuid.Generator
}

// New creates a new gateway
func New(cfg *Config) (*Gateway, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.NewSession == nil {
		return nil, errors.New("session factory cannot be nil")
	}
	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	conf := cfg.Connection
	if conf.WriteTimeout == 0 {
		conf = DefaultConnectionConfig()
	}
	if conf.SendBufferSize <= 0 {
		conf.SendBufferSize = DefaultConnectionConfig().SendBufferSize
	}

	generator := cfg.UUIDGenerator
	if generator == nil {
		generator = uuid.New()
	}

	return &Gateway{
		connections: make(map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  conf.ReadBufferSize,
			WriteBufferSize: conf.WriteBufferSize,
			CheckOrigin:     conf.CheckOrigin,
		},
		config:     conf,
		newSession: cfg.NewSession,
		messaging:  cfg.Messaging,
		uuid:       generator,
	}, nil
}

// ServeHTTP upgrades the request and starts a game connection.
// The profile query parameter selects saved settings; a missing or invalid one gets a fresh profile.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	profileID := r.URL.Query().Get("profile")
	if !uuid.IsValid(profileID) {
		profileID = g.uuid.NewUUID()
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		return
	}

	c := newConnection(g, conn, g.uuid.NewUUID(), profileID)

	svc, err := g.newSession(profileID, &renderer{conn: c}, &audio{conn: c})
	if err != nil {
		log.Error().Err(err).Str("profile", profileID).Msg("failed to create game session")
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session unavailable"))
		_ = conn.Close()
		return
	}
	c.game = svc

	g.register(c)

	go c.writePump()
	c.greet()
	go c.readPump()

	log.Info().
		Str("connection_id", c.ID).
		Str("profile", profileID).
		Msg("WebSocket connection established")
}

// Count returns the number of open connections
func (g *Gateway) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.connections)
}

// Close disconnects every client
func (g *Gateway) Close() {
	g.mu.RLock()
	conns := make([]*Connection, 0, len(g.connections))
	for c := range g.connections {
		conns = append(conns, c)
	}
	g.mu.RUnlock()

	for _, c := range conns {
		c.close()
	}
}

func (g *Gateway) register(c *Connection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.connections[c] = true

	log.Debug().
		Str("connection_id", c.ID).
		Int("total_connections", len(g.connections)).
		Msg("connection registered")
}

func (g *Gateway) unregister(c *Connection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.connections[c]; !ok {
		return
	}
	delete(g.connections, c)

	log.Info().
		Str("connection_id", c.ID).
		Str("profile", c.ProfileID).
		Msg("connection unregistered")
}
