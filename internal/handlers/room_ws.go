// internal/handlers/room_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wildcard-games/uno-service/internal/game"
	"github.com/wildcard-games/uno-service/internal/middleware"
)

// inboundMessage is the single shape of client requests on the room socket.
type inboundMessage struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// RoomWSHandler serves /room/ws/{roomID}. One socket, one player, one room:
// the client joins with a join_room message and the host starts the game
// with start_game. All outbound traffic flows through the player's event
// channel so the room never touches the socket directly.
func RoomWSHandler(logger *logrus.Logger, srv *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remoteAddr := r.RemoteAddr
		pathParts := strings.Split(strings.TrimPrefix(r.URL.Path, "/room/ws/"), "/")
		roomID := pathParts[0]
		if roomID == "" {
			http.Error(w, "missing room id", http.StatusBadRequest)
			return
		}

		// Guest identity must be resolved before the upgrade, while headers
		// can still be written.
		playerID, err := EnsureGuest(w, r)
		if err != nil {
			logger.Warnf("guest auth failed for room %s: %v", roomID, err)
			http.Error(w, "authentication failed", http.StatusInternalServerError)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"uno"},
			OriginPatterns: []string{"*"}, // Adjust in production
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "uno" {
			c.Close(BadSubprotocolError, "client must speak the uno subprotocol")
			return
		}

		logger.Infof("Player %v (%s) connected for room %s", playerID, remoteAddr, roomID)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		conn := &game.Conn{
			PlayerID: playerID,
			OutChan:  make(chan game.Event, 16),
		}

		go writePump(ctx, c, conn, logger)
		readErr := readPump(ctx, c, srv, roomID, playerID, conn, logger)

		// Drop the connection from the broadcast group; the seat itself is
		// kept (no reconnect support, the player is simply unreachable).
		if room, ok := srv.Registry.Get(roomID); ok {
			room.Detach(playerID)
		}
		middleware.LogWebSocketDisconnect(logger, remoteAddr, r.URL.Path, readErr)
	}
}

// readPump handles incoming messages until the socket closes or the context
// is cancelled. Returns the terminal read error, nil on clean closure.
func readPump(ctx context.Context, c *websocket.Conn, srv *Server, roomID string, playerID uuid.UUID, conn *game.Conn, logger *logrus.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		typ, data, err := c.Read(ctx)
		if err != nil {
			closeStatus := websocket.CloseStatus(err)
			if closeStatus == websocket.StatusNormalClosure || closeStatus == websocket.StatusGoingAway {
				return nil
			}
			if strings.Contains(err.Error(), "context canceled") {
				return nil
			}
			return err
		}
		if typ != websocket.MessageText {
			logger.Warnf("Room %s: non-text message type %d from player %v, ignoring", roomID, typ, playerID)
			continue
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("Room %s: invalid json from player %v: %v", roomID, playerID, err)
			conn.Write(game.Event{Type: game.EventError, Message: "invalid JSON"})
			continue
		}

		handleRoomMessage(srv, roomID, playerID, conn, msg, logger)
	}
}

// handleRoomMessage dispatches one client request. Join and Start serialize
// on the room's own lock; validation failures come back on the caller's
// channel only and are never broadcast.
func handleRoomMessage(srv *Server, roomID string, playerID uuid.UUID, conn *game.Conn, msg inboundMessage, logger *logrus.Logger) {
	switch msg.Type {
	case "join_room":
		name := strings.TrimSpace(msg.Name)
		if name == "" {
			name = "Guest"
		}
		room := srv.Registry.GetOrCreate(roomID)
		if err := room.Join(playerID, name, conn); err != nil {
			conn.Write(game.ErrorEvent(err))
			return
		}
		logger.Infof("Player %v (%s) joined room %s", playerID, name, roomID)

	case "start_game":
		room, ok := srv.Registry.Get(roomID)
		if !ok {
			conn.Write(game.ErrorEvent(game.ErrRoomNotFound))
			return
		}
		if err := room.Start(playerID); err != nil {
			conn.Write(game.ErrorEvent(err))
			return
		}
		logger.Infof("Room %s started by %v", roomID, playerID)

	default:
		conn.Write(game.Event{Type: game.EventError, Message: fmt.Sprintf("unknown message type: %s", msg.Type)})
	}
}

// writePump drains the player's event channel onto the socket and keeps the
// connection alive with periodic pings.
func writePump(ctx context.Context, c *websocket.Conn, conn *game.Conn, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-conn.OutChan:
			data, err := json.Marshal(ev)
			if err != nil {
				logger.Warnf("failed to marshal outgoing %s event for player %v: %v", ev.Type, conn.PlayerID, err)
				continue
			}

			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("failed to write to websocket for player %v: %v", conn.PlayerID, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warnf("failed to ping player %v: %v, assuming disconnect", conn.PlayerID, err)
				return
			}
		}
	}
}
