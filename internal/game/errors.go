// internal/game/errors.go
package game

import "errors"

// Registry lookups surface ErrNotFound and ErrGameFull to the lifecycle
// endpoints. ErrInvalidAction covers every failed action precondition
// (wrong turn, no drawn card, bad position, game already ended); the action
// router swallows it as a logged no-op rather than answering the client.
var (
	ErrNotFound      = errors.New("game not found")
	ErrGameFull      = errors.New("game already full")
	ErrInvalidAction = errors.New("invalid action")
)
