// internal/game/registry.go
package game

import (
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// Registry is the concurrency-safe mapping from session code to live game.
// Sessions are never evicted: they live for the lifetime of the process.
type Registry struct {
	mu    sync.Mutex
	rng   *rand.Rand
	games map[string]*Game
}

func NewRegistry() *Registry {
	return &Registry{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		games: make(map[string]*Game),
	}
}

// Create allocates a fresh game under a collision-free 6-digit numeric code
// and returns it with seat 1 already dealt.
func (r *Registry) Create() *Game {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		code := strconv.Itoa(100000 + r.rng.Intn(900000))
		if _, taken := r.games[code]; taken {
			continue
		}
		g := newGame(code)
		r.games[code] = g
		return g
	}
}

// Get looks up a live game by code. Absence is a normal outcome the caller
// must handle, not an error.
func (r *Registry) Get(code string) (*Game, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[code]
	return g, ok
}

// Join seats player 2 in the game identified by code. It returns
// ErrNotFound for an unknown code and ErrGameFull if seat 2 is taken.
func (r *Registry) Join(code string) (*Game, error) {
	g, ok := r.Get(code)
	if !ok {
		return nil, ErrNotFound
	}
	if err := g.join(); err != nil {
		return nil, err
	}
	return g, nil
}

// Len reports how many sessions are currently registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.games)
}
