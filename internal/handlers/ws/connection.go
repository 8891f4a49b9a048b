package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/lightmatch/internal/models"
	"github.com/KirkDiggler/lightmatch/internal/services/game"
)

// Connection is one client playing one game.
//
// Renderer and audio calls arrive with the game lock held, so emit never
// blocks: a client that cannot keep up is disconnected.
type Connection struct {
	ID          string
	ProfileID   string
	ConnectedAt time.Time

	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	once    sync.Once
	gateway *Gateway
	game    game.Service

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	language string
	onSelect func(label string)
	options  map[string]bool
}

func newConnection(g *Gateway, conn *websocket.Conn, id, profileID string) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		ID:          id,
		ProfileID:   profileID,
		ConnectedAt: time.Now(),
		conn:        conn,
		send:        make(chan []byte, g.config.SendBufferSize),
		done:        make(chan struct{}),
		gateway:     g,
		ctx:         ctx,
		cancel:      cancel,
		language:    models.DefaultLanguage,
		options:     make(map[string]bool),
	}
}

// greet loads the profile settings and shows the main menu
func (c *Connection) greet() {
	out, err := c.game.LoadSettings(c.ctx, &game.LoadSettingsInput{})
	if err != nil {
		log.Error().Err(err).Str("connection_id", c.ID).Msg("failed to load settings")
		return
	}
	c.setLanguage(out.Settings.Language)

	c.emit(EventHello, helloPayload{ProfileID: c.ProfileID, Settings: out.Settings})
	c.emit(EventScreen, screenPayload{Screen: game.ScreenMenu})
}

// emit queues an event for the client
func (c *Connection) emit(eventType EventType, payload interface{}) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("event", string(eventType)).Msg("failed to marshal event")
		return
	}

	select {
	case <-c.done:
	case c.send <- data:
	default:
		log.Warn().
			Str("connection_id", c.ID).
			Msg("connection send buffer full, closing connection")
		go c.close()
	}
}

// close tears the connection down once; it must not be called with the game lock held
func (c *Connection) close() {
	c.once.Do(func() {
		close(c.done)
		c.cancel()
		c.gateway.unregister(c)
		_ = c.conn.Close()

		if c.game != nil {
			if _, err := c.game.ReturnToMenu(context.Background(), &game.ReturnToMenuInput{}); err != nil {
				log.Warn().Err(err).Str("connection_id", c.ID).Msg("failed to stop game on disconnect")
			}
		}
	})
}

func (c *Connection) setLanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.language = lang
}

func (c *Connection) currentLanguage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

func (c *Connection) setAnswerOptions(options []models.AnswerOption, onSelect func(label string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSelect = onSelect
	c.options = make(map[string]bool, len(options))
	for _, o := range options {
		c.options[o.Label] = true
	}
}

// choose presses the answer button for label; labels not on the buttons are ignored
func (c *Connection) choose(label string) bool {
	c.mu.Lock()
	onSelect := c.onSelect
	ok := c.options[label]
	c.mu.Unlock()

	if onSelect == nil || !ok {
		return false
	}
	onSelect(label)
	return true
}

// writePump handles sending messages to the WebSocket connection
func (c *Connection) writePump() {
	conf := c.gateway.config
	ticker := time.NewTicker(conf.PingInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(conf.WriteTimeout))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(conf.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(conf.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump handles reading commands from the WebSocket connection
func (c *Connection) readPump() {
	conf := c.gateway.config
	defer c.close()

	c.conn.SetReadLimit(conf.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(conf.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(conf.ReadTimeout))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected WebSocket close error")
			}
			return
		}

		c.handleCommand(message)
		_ = c.conn.SetReadDeadline(time.Now().Add(conf.ReadTimeout))
	}
}
