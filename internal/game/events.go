// internal/game/events.go
package game

// EventKind discriminates the closed set of outbound event payloads.
type EventKind string

const (
	KindGameState  EventKind = "game_state"
	KindGameUpdate EventKind = "game_update"
	KindGameEnd    EventKind = "game_end"
)

// Event is one outbound message produced by applying an action. The
// concrete types below are the only implementations; consumers dispatch by
// switching on the concrete type or on EventKind.
type Event interface {
	EventKind() EventKind
}

// StateEvent is the full authoritative snapshot, broadcast after every
// completed action and sent privately to each newly connected participant.
// Player2Cards and Player2Peeked are empty slices until seat 2 joins;
// DrawnCard and DrawnBy are null outside the drawn-card window.
type StateEvent struct {
	Type          EventKind `json:"type"`
	Player1Cards  []Card    `json:"player1_cards"`
	Player2Cards  []Card    `json:"player2_cards"`
	Player1Peeked []bool    `json:"player1_peeked"`
	Player2Peeked []bool    `json:"player2_peeked"`
	CurrentPlayer Seat      `json:"current_player"`
	GameStarted   bool      `json:"game_started"`
	DrawnCard     *Card     `json:"drawn_card"`
	DrawnBy       *Seat     `json:"drawn_by"`
	RevealAll     bool      `json:"reveal_all"`
}

func (StateEvent) EventKind() EventKind { return KindGameState }

// UpdateEvent announces a freshly drawn card and who drew it. It precedes
// the state broadcast for the same draw.
type UpdateEvent struct {
	Type   EventKind `json:"type"`
	Card   Card      `json:"card"`
	Player Seat      `json:"player"`
}

func (UpdateEvent) EventKind() EventKind { return KindGameUpdate }

// EndEvent carries both final hands, both sums and the winner. RevealAll is
// always true: the end of the game turns every card face up.
type EndEvent struct {
	Type         EventKind `json:"type"`
	Player1Cards []Card    `json:"player1_cards"`
	Player2Cards []Card    `json:"player2_cards"`
	Player1Sum   int       `json:"player1_sum"`
	Player2Sum   int       `json:"player2_sum"`
	Winner       string    `json:"winner"`
	RevealAll    bool      `json:"reveal_all"`
}

func (EndEvent) EventKind() EventKind { return KindGameEnd }

// ActionType names a client move.
type ActionType string

const (
	ActionPeekOwn      ActionType = "peek_own"
	ActionDraw         ActionType = "draw"
	ActionDiscard      ActionType = "discard"
	ActionSwap         ActionType = "swap"
	ActionReplace      ActionType = "replace"
	ActionPeekOpponent ActionType = "peek_opponent"
	ActionEndGame      ActionType = "end_game"
)

// Action is one decoded client move. Optional fields are pointers so the
// state machine can tell an absent field from a zero position.
type Action struct {
	Type     ActionType
	Position *int  // peek_own, peek_opponent, replace
	Pos      *int  // drawn-card swap
	Pos1     *int  // two-seat swap, acting seat's position
	Pos2     *int  // two-seat swap, opponent's position
	Card     *Card // replace
}
