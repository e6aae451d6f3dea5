// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cameo-gg/cameo/internal/game"
)

// StartGameHandler handles POST /game/start: allocate a session, seat the
// caller as player 1, return the join code.
func StartGameHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if _, err := EnsureGuest(w, r); err != nil {
			gs.Logger.Warnf("failed to establish guest identity: %v", err)
		}
		g := gs.Registry.Create()
		gs.Logger.Infof("Created game %s", g.Code)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"code":   g.Code,
			"player": 1,
		})
	}
}

// connectRequest is the POST /game/connect body.
type connectRequest struct {
	Code string `json:"code"`
}

// ConnectGameHandler handles POST /game/connect: seat the caller as player 2
// in an existing session. Unknown codes and full games answer 400 with an
// error body the client displays verbatim.
func ConnectGameHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if _, err := EnsureGuest(w, r); err != nil {
			gs.Logger.Warnf("failed to establish guest identity: %v", err)
		}

		var req connectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "Invalid request body"})
			return
		}

		g, err := gs.Registry.Join(req.Code)
		switch {
		case errors.Is(err, game.ErrGameFull):
			gs.Logger.Infof("Game %s already full", req.Code)
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "Game already full"})
			return
		case errors.Is(err, game.ErrNotFound):
			gs.Logger.Infof("Connect attempt with invalid code %q", req.Code)
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "Invalid game code"})
			return
		case err != nil:
			gs.Logger.Errorf("Join failed for game %s: %v", req.Code, err)
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "Internal error"})
			return
		}

		gs.Logger.Infof("Player 2 connected to game %s", g.Code)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"code":   g.Code,
			"player": 2,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
