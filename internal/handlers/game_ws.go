// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cameo-gg/cameo/internal/game"
)

// GameMessage is one inbound action frame on a session channel.
type GameMessage struct {
	Action   string     `json:"action"`
	Player   int        `json:"player"`
	Position *int       `json:"position,omitempty"`
	Pos      *int       `json:"pos,omitempty"`
	Pos1     *int       `json:"pos1,omitempty"`
	Pos2     *int       `json:"pos2,omitempty"`
	Card     *game.Card `json:"card,omitempty"`
}

// GameWSHandler upgrades /game/ws/{code} to a WebSocket, registers the
// connection in the broadcast hub, replays the current state to the new
// participant, and runs the read loop until the client goes away.
func GameWSHandler(logger *logrus.Logger, gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.Trim(strings.TrimPrefix(r.URL.Path, "/game/ws/"), "/")
		if code == "" {
			http.Error(w, "Missing game code in path (/game/ws/{code})", http.StatusBadRequest)
			return
		}

		g, ok := gs.Registry.Get(code)
		if !ok {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}

		// Cookie must be written before the upgrade hijacks the response.
		guestID, err := EnsureGuest(w, r)
		if err != nil {
			logger.Warnf("Guest identity failed for game %s: %v", code, err)
			http.Error(w, "Failed to establish identity", http.StatusInternalServerError)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"game"},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.Warnf("WebSocket accept error for game %s: %v", code, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		logger.Infof("Participant %s connected to game %s from %s", guestID, code, r.RemoteAddr)

		gs.Hub.Join(code, guestID, c)
		defer func() {
			gs.Hub.Leave(code, guestID)
			logger.Infof("Participant %s left game %s", guestID, code)
		}()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Connect-time replay: this participant alone gets the full state.
		sendWsMessage(ctx, logger, c, g.Snapshot())

		readGameMessages(ctx, c, gs, g, guestID)
	}
}

// readGameMessages reads action frames from one participant, applies them
// to the session, and fans the resulting events out. Invalid actions are
// dropped silently (logged only); malformed frames get an error event back
// to this sender alone.
func readGameMessages(ctx context.Context, c *websocket.Conn, gs *GameServer, g *game.Game, guestID uuid.UUID) {
	logger := gs.Logger
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				logger.Infof("WebSocket closed normally for participant %s in game %s", guestID, g.Code)
			} else if errors.Is(err, context.Canceled) {
				logger.Infof("WebSocket context canceled for participant %s in game %s", guestID, g.Code)
			} else {
				logger.Warnf("Error reading from WebSocket for participant %s in game %s: %v", guestID, g.Code, err)
			}
			return
		}
		if msgType != websocket.MessageText {
			logger.Warnf("Ignoring non-text message from participant %s in game %s", guestID, g.Code)
			continue
		}

		var msg GameMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("Invalid JSON from participant %s in game %s: %v", guestID, g.Code, err)
			sendWsError(ctx, logger, c, "Invalid JSON format.")
			continue
		}

		if msg.Action == "ping" {
			sendWsMessage(ctx, logger, c, map[string]string{"type": "pong"})
			continue
		}

		events, err := g.Apply(game.Seat(msg.Player), game.Action{
			Type:     game.ActionType(msg.Action),
			Position: msg.Position,
			Pos:      msg.Pos,
			Pos1:     msg.Pos1,
			Pos2:     msg.Pos2,
			Card:     msg.Card,
		})
		if err != nil {
			// No rejection frame goes back to the client; only the
			// server log records the drop.
			logger.Infof("Game %s: dropping action %q from player %d: %v", g.Code, msg.Action, msg.Player, err)
			continue
		}

		gs.Historian.Record(g.Code, msg.Player, msg.Action)

		for _, ev := range events {
			gs.Hub.Broadcast(g.Code, ev)
			if end, ok := ev.(game.EndEvent); ok {
				logger.Infof("Game %s ended: %s (%d vs %d)", g.Code, end.Winner, end.Player1Sum, end.Player2Sum)
				gs.Archive.RecordResult(g.Code, end.Player1Sum, end.Player2Sum, end.Winner)
			}
		}
	}
}

// sendWsMessage marshals a payload and writes it to a single connection
// with a write timeout. Used for direct responses only; session-wide
// delivery goes through the hub.
func sendWsMessage(ctx context.Context, logger *logrus.Logger, c *websocket.Conn, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Errorf("Failed to marshal WebSocket message: %v", err)
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := c.Write(writeCtx, websocket.MessageText, data); err != nil {
		status := websocket.CloseStatus(err)
		if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
			logger.Warnf("Failed to write WebSocket message: %v", err)
		}
	}
}

// sendWsError sends a structured error event to the offending sender only.
func sendWsError(ctx context.Context, logger *logrus.Logger, c *websocket.Conn, errorMsg string) {
	sendWsMessage(ctx, logger, c, map[string]interface{}{
		"type":    "error",
		"message": errorMsg,
	})
}
