// internal/game/game.go
package game

import (
	"fmt"
	"sync"
)

// Seat identifies one of the two fixed player roles in a session.
type Seat int

const (
	Seat1 Seat = 1
	Seat2 Seat = 2
)

// Other returns the opposing seat.
func (s Seat) Other() Seat {
	if s == Seat1 {
		return Seat2
	}
	return Seat1
}

// Valid reports whether s is one of the two playable seats.
func (s Seat) Valid() bool {
	return s == Seat1 || s == Seat2
}

// Label returns the seat's display name, as used in the game_end winner field.
func (s Seat) Label() string {
	return fmt.Sprintf("Player %d", int(s))
}

const handSize = 4

// Game holds the entire authoritative state for a single Cameo session.
//
// All mutation goes through Join and Apply, which serialize on the game's
// mutex: two actions for the same session never interleave. Different
// sessions share nothing and proceed in parallel.
type Game struct {
	Code string

	mu sync.Mutex

	deck    *Deck
	discard []Card

	seat1Cards []Card
	seat2Cards []Card // nil until seat 2 joins

	seat1Peeked []bool
	seat2Peeked []bool

	currentTurn Seat

	// drawnCard is the single card in limbo between "drawn" and "resolved",
	// held by drawnBy. Both are zero outside that window.
	drawnCard *Card
	drawnBy   Seat

	started   bool
	ended     bool
	winner    string
	revealAll bool
}

// newGame shuffles a fresh deck and deals seat 1. Seat 2 stays unseated
// until Join.
func newGame(code string) *Game {
	g := &Game{
		Code:        code,
		deck:        NewDeck(),
		currentTurn: Seat1,
	}
	g.seat1Cards = g.deck.Draw(handSize)
	g.seat1Peeked = make([]bool, handSize)
	return g
}

// join deals seat 2 into the game. It fails with ErrGameFull if seat 2 is
// already occupied.
func (g *Game) join() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seat2Cards != nil {
		return ErrGameFull
	}
	g.seat2Cards = g.deck.Draw(handSize)
	g.seat2Peeked = make([]bool, handSize)
	return nil
}

// Ended reports whether the game has reached its terminal state.
func (g *Game) Ended() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ended
}

// Snapshot returns the current full state event. Used for connect-time
// replay: every new participant receives it before any live traffic.
func (g *Game) Snapshot() StateEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// Apply runs one action through the state machine and returns the events to
// fan out, in broadcast order. A rejected action returns ErrInvalidAction
// wrapped with the reason and leaves the state untouched; it is never fatal.
func (g *Game) Apply(seat Seat, act Action) ([]Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !seat.Valid() {
		return nil, fmt.Errorf("%w: unknown seat %d", ErrInvalidAction, seat)
	}
	if g.ended {
		return nil, fmt.Errorf("%w: game already ended", ErrInvalidAction)
	}

	switch act.Type {
	case ActionPeekOwn:
		if !g.started {
			return g.applySetupPeek(seat, act)
		}
		return g.applyPeek(seat, seat, act)
	case ActionPeekOpponent:
		if !g.started {
			return nil, fmt.Errorf("%w: peek_opponent before game start", ErrInvalidAction)
		}
		return g.applyPeek(seat, seat.Other(), act)
	case ActionDraw:
		return g.applyDraw(seat)
	case ActionDiscard:
		return g.applyDiscard(seat)
	case ActionSwap:
		return g.applySwap(seat, act)
	case ActionReplace:
		return g.applyReplace(seat, act)
	case ActionEndGame:
		return g.applyEndGame(seat)
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidAction, act.Type)
	}
}

// applySetupPeek reveals one of the acting seat's two bottom cards during
// setup. Peeking a position twice is idempotent: the current state is
// re-broadcast with no further change. Once both seats have seen both
// bottom positions the game starts.
func (g *Game) applySetupPeek(seat Seat, act Action) ([]Event, error) {
	if act.Position == nil {
		return nil, fmt.Errorf("%w: peek_own requires a position", ErrInvalidAction)
	}
	pos := *act.Position
	if pos != 2 && pos != 3 {
		return nil, fmt.Errorf("%w: setup peek position %d not in {2,3}", ErrInvalidAction, pos)
	}
	peeked := g.peekedFor(seat)
	if peeked == nil {
		return nil, fmt.Errorf("%w: seat %d has not been dealt", ErrInvalidAction, seat)
	}
	peeked[pos] = true

	if g.seat2Cards != nil &&
		g.seat1Peeked[2] && g.seat1Peeked[3] &&
		g.seat2Peeked[2] && g.seat2Peeked[3] {
		g.started = true
	}
	return []Event{g.snapshot()}, nil
}

// applyPeek marks a position of the target seat's hand as seen by its
// owner, resolves any held drawn card, and ends the acting seat's turn.
func (g *Game) applyPeek(seat, target Seat, act Action) ([]Event, error) {
	if act.Position == nil {
		return nil, fmt.Errorf("%w: peek requires a position", ErrInvalidAction)
	}
	pos := *act.Position
	if pos < 0 || pos >= handSize {
		return nil, fmt.Errorf("%w: peek position %d out of range", ErrInvalidAction, pos)
	}
	peeked := g.peekedFor(target)
	if peeked == nil {
		return nil, fmt.Errorf("%w: seat %d has not been dealt", ErrInvalidAction, target)
	}
	peeked[pos] = true
	g.clearDrawn()
	g.currentTurn = seat.Other()
	return []Event{g.snapshot()}, nil
}

// applyDraw pops one card from the deck tail into the drawn-card window.
// The turn does not end; the drawer must still resolve the card.
func (g *Game) applyDraw(seat Seat) ([]Event, error) {
	if !g.started {
		return nil, fmt.Errorf("%w: draw before game start", ErrInvalidAction)
	}
	if g.currentTurn != seat {
		return nil, fmt.Errorf("%w: not seat %d's turn", ErrInvalidAction, seat)
	}
	if g.drawnCard != nil {
		return nil, fmt.Errorf("%w: seat %d already holds a drawn card", ErrInvalidAction, g.drawnBy)
	}
	cards := g.deck.Draw(1)
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: deck is empty", ErrInvalidAction)
	}
	card := cards[0]
	g.drawnCard = &card
	g.drawnBy = seat
	update := UpdateEvent{Type: KindGameUpdate, Card: card, Player: seat}
	return []Event{update, g.snapshot()}, nil
}

// applyDiscard resolves the held drawn card onto the discard pile and flips
// the turn.
func (g *Game) applyDiscard(seat Seat) ([]Event, error) {
	if !g.started {
		return nil, fmt.Errorf("%w: discard before game start", ErrInvalidAction)
	}
	if g.currentTurn != seat {
		return nil, fmt.Errorf("%w: not seat %d's turn", ErrInvalidAction, seat)
	}
	if g.drawnCard == nil || g.drawnBy != seat {
		return nil, fmt.Errorf("%w: seat %d holds no drawn card", ErrInvalidAction, seat)
	}
	g.discard = append(g.discard, *g.drawnCard)
	g.clearDrawn()
	g.currentTurn = seat.Other()
	return []Event{g.snapshot()}, nil
}

// applySwap handles both swap forms. With pos1/pos2 it exchanges the acting
// seat's card at pos1 with the opponent's card at pos2; neither the turn
// nor the drawn-card window is touched. With pos it exchanges the acting
// seat's hand card with the held drawn card: the former hand card becomes
// the drawn card, still held by the same seat and pending a discard.
func (g *Game) applySwap(seat Seat, act Action) ([]Event, error) {
	if !g.started {
		return nil, fmt.Errorf("%w: swap before game start", ErrInvalidAction)
	}
	if g.currentTurn != seat {
		return nil, fmt.Errorf("%w: not seat %d's turn", ErrInvalidAction, seat)
	}

	switch {
	case act.Pos1 != nil && act.Pos2 != nil:
		pos1, pos2 := *act.Pos1, *act.Pos2
		if pos1 < 0 || pos1 >= handSize || pos2 < 0 || pos2 >= handSize {
			return nil, fmt.Errorf("%w: swap positions %d,%d out of range", ErrInvalidAction, pos1, pos2)
		}
		mine := g.handFor(seat)
		theirs := g.handFor(seat.Other())
		if theirs == nil {
			return nil, fmt.Errorf("%w: opponent has not been dealt", ErrInvalidAction)
		}
		mine[pos1], theirs[pos2] = theirs[pos2], mine[pos1]
	case act.Pos != nil:
		if g.drawnCard == nil || g.drawnBy != seat {
			return nil, fmt.Errorf("%w: seat %d holds no drawn card to swap", ErrInvalidAction, seat)
		}
		pos := *act.Pos
		if pos < 0 || pos >= handSize {
			return nil, fmt.Errorf("%w: swap position %d out of range", ErrInvalidAction, pos)
		}
		hand := g.handFor(seat)
		hand[pos], *g.drawnCard = *g.drawnCard, hand[pos]
	default:
		return nil, fmt.Errorf("%w: swap requires pos or pos1/pos2", ErrInvalidAction)
	}
	return []Event{g.snapshot()}, nil
}

// applyReplace overwrites the acting seat's card at the given position with
// the card supplied by the client, retiring the old card to the discard
// pile, then resolves the drawn-card window and ends the turn.
func (g *Game) applyReplace(seat Seat, act Action) ([]Event, error) {
	if !g.started {
		return nil, fmt.Errorf("%w: replace before game start", ErrInvalidAction)
	}
	if act.Position == nil || act.Card == nil {
		return nil, fmt.Errorf("%w: replace requires a position and a card", ErrInvalidAction)
	}
	pos := *act.Position
	if pos < 0 || pos >= handSize {
		return nil, fmt.Errorf("%w: replace position %d out of range", ErrInvalidAction, pos)
	}
	hand := g.handFor(seat)
	if hand == nil {
		return nil, fmt.Errorf("%w: seat %d has not been dealt", ErrInvalidAction, seat)
	}
	g.discard = append(g.discard, hand[pos])
	hand[pos] = *act.Card
	g.clearDrawn()
	g.currentTurn = seat.Other()
	return []Event{g.snapshot()}, nil
}

// applyEndGame scores both hands, decides the winner and moves the game to
// its terminal state. The ended guard in Apply makes a second call a no-op,
// so the recorded winner can never change.
func (g *Game) applyEndGame(seat Seat) ([]Event, error) {
	if !g.started {
		return nil, fmt.Errorf("%w: end_game before game start", ErrInvalidAction)
	}
	p1Sum, p2Sum := 0, 0
	for _, c := range g.seat1Cards {
		p1Sum += c.Score()
	}
	for _, c := range g.seat2Cards {
		p2Sum += c.Score()
	}
	switch {
	case p1Sum < p2Sum:
		g.winner = Seat1.Label()
	case p2Sum < p1Sum:
		g.winner = Seat2.Label()
	default:
		g.winner = "Tie"
	}
	g.ended = true
	g.revealAll = true

	end := EndEvent{
		Type:         KindGameEnd,
		Player1Cards: append([]Card(nil), g.seat1Cards...),
		Player2Cards: append([]Card(nil), g.seat2Cards...),
		Player1Sum:   p1Sum,
		Player2Sum:   p2Sum,
		Winner:       g.winner,
		RevealAll:    true,
	}
	return []Event{end}, nil
}

// handFor returns the mutable hand for a seat; nil if the seat is unseated.
func (g *Game) handFor(seat Seat) []Card {
	if seat == Seat1 {
		return g.seat1Cards
	}
	return g.seat2Cards
}

// peekedFor returns the mutable peeked array for a seat; nil if unseated.
func (g *Game) peekedFor(seat Seat) []bool {
	if seat == Seat1 {
		return g.seat1Peeked
	}
	return g.seat2Peeked
}

func (g *Game) clearDrawn() {
	g.drawnCard = nil
	g.drawnBy = 0
}

// snapshot builds the full game_state payload from copies of the mutable
// slices, so callers can marshal it after the game lock is released.
// Callers hold g.mu.
func (g *Game) snapshot() StateEvent {
	st := StateEvent{
		Type:          KindGameState,
		Player1Cards:  append([]Card(nil), g.seat1Cards...),
		Player2Cards:  []Card{},
		Player1Peeked: append([]bool(nil), g.seat1Peeked...),
		Player2Peeked: []bool{},
		CurrentPlayer: g.currentTurn,
		GameStarted:   g.started,
		RevealAll:     g.revealAll,
	}
	if g.seat2Cards != nil {
		st.Player2Cards = append([]Card(nil), g.seat2Cards...)
		st.Player2Peeked = append([]bool(nil), g.seat2Peeked...)
	}
	if g.drawnCard != nil {
		card := *g.drawnCard
		by := g.drawnBy
		st.DrawnCard = &card
		st.DrawnBy = &by
	}
	return st
}
