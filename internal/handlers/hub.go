// internal/handlers/hub.go
package handlers

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cameo-gg/cameo/internal/game"
)

const writeTimeout = 3 * time.Second

// member is one connected WebSocket participant of a session.
type member struct {
	id   uuid.UUID
	conn *websocket.Conn
}

// Hub is the broadcast fabric: it tracks which connections belong to which
// session and fans events out to them. Membership is independent of game
// state — a disconnect removes the member but never ends or pauses the
// session, and an empty group is legal.
type Hub struct {
	log *logrus.Logger

	mu      sync.Mutex
	members map[string]map[uuid.UUID]*member
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		log:     log,
		members: make(map[string]map[uuid.UUID]*member),
	}
}

// Join adds a participant to a session's broadcast group. Idempotent: a
// rejoin with the same id replaces the stored connection.
func (h *Hub) Join(code string, id uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group, ok := h.members[code]
	if !ok {
		group = make(map[uuid.UUID]*member)
		h.members[code] = group
	}
	group[id] = &member{id: id, conn: conn}
}

// Leave removes a participant from a session's broadcast group. The session
// itself persists regardless of remaining membership.
func (h *Hub) Leave(code string, id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group, ok := h.members[code]
	if !ok {
		return
	}
	delete(group, id)
	if len(group) == 0 {
		delete(h.members, code)
	}
}

// Members reports the current group size for a session.
func (h *Hub) Members(code string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.members[code])
}

// Broadcast delivers an event to every current member of a session.
// The member list is snapshotted under the hub lock, the payload marshaled
// once, and the writes happen on a separate goroutine with a per-write
// timeout: a slow or dead member can neither block the caller nor starve
// the other members.
func (h *Hub) Broadcast(code string, ev game.Event) {
	h.mu.Lock()
	targets := make([]*member, 0, len(h.members[code]))
	for _, m := range h.members[code] {
		targets = append(targets, m)
	}
	h.mu.Unlock()

	if len(targets) == 0 {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Errorf("Failed to marshal %s event for game %s: %v", ev.EventKind(), code, err)
		return
	}

	go func() {
		for _, m := range targets {
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			err := m.conn.Write(ctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				h.log.Warnf("Failed to write %s to member %s of game %s: %v", ev.EventKind(), m.id, code, err)
			}
		}
	}()
}
