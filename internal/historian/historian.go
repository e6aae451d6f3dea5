// internal/historian/historian.go
package historian

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ActionRecord is the shape pushed onto the Redis queue, one per applied
// game action, for offline replay tooling.
type ActionRecord struct {
	Code      string `json:"code"`
	Seat      int    `json:"seat"`
	Action    string `json:"action"`
	Index     int    `json:"index"`
	Timestamp int64  `json:"timestamp"`
}

// Historian appends per-action records to a Redis list. It is optional
// infrastructure: a nil *Historian is a no-op, and a failed push is logged
// but never surfaced to gameplay.
type Historian struct {
	rdb   *redis.Client
	queue string
	log   *logrus.Logger

	mu   sync.Mutex
	seqs map[string]int // per-session action counters
}

// Connect builds a Historian against the given Redis address and verifies
// the connection with a short ping.
func Connect(addr string, db int, queue string, log *logrus.Logger) (*Historian, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to Redis at %s: %w", addr, err)
	}
	return &Historian{
		rdb:   rdb,
		queue: queue,
		log:   log,
		seqs:  make(map[string]int),
	}, nil
}

// Record queues one action record. The push happens off the caller's
// goroutine so the session's critical section is never held across Redis I/O.
func (h *Historian) Record(code string, seat int, action string) {
	if h == nil {
		return
	}
	h.mu.Lock()
	h.seqs[code]++
	idx := h.seqs[code]
	h.mu.Unlock()

	rec := ActionRecord{
		Code:      code,
		Seat:      seat,
		Action:    action,
		Index:     idx,
		Timestamp: time.Now().Unix(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		h.log.Warnf("historian: failed to marshal record for game %s: %v", code, err)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := h.rdb.RPush(ctx, h.queue, data).Err(); err != nil {
			h.log.Warnf("historian: failed to push record for game %s: %v", code, err)
		}
	}()
}

// Close releases the Redis connection.
func (h *Historian) Close() error {
	if h == nil {
		return nil
	}
	return h.rdb.Close()
}
