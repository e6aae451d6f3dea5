// internal/handlers/game_server.go
package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/cameo-gg/cameo/internal/archive"
	"github.com/cameo-gg/cameo/internal/game"
	"github.com/cameo-gg/cameo/internal/historian"
)

// GameServer bundles the session registry, the broadcast hub and the
// optional side channels (historian, archive) behind the HTTP and WS
// handlers. Historian and Archive may stay nil; both are nil-safe.
type GameServer struct {
	Registry  *game.Registry
	Hub       *Hub
	Logger    *logrus.Logger
	Historian *historian.Historian
	Archive   *archive.Archive
}

func NewGameServer(logger *logrus.Logger) *GameServer {
	return &GameServer{
		Registry: game.NewRegistry(),
		Hub:      NewHub(logger),
		Logger:   logger,
	}
}
