package golf

// EventKind enumerates the discrete events the core reports to renderers,
// audio and haptics.
type EventKind uint8

const (
	EventBounced EventKind = iota + 1
	EventEnteredHazard
	EventHoleReached
	EventOutOfBounds
	EventStrokeIncremented
	EventBallStopped
	EventBallReset
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventBounced:
		return "bounced"
	case EventEnteredHazard:
		return "entered_hazard"
	case EventHoleReached:
		return "hole_reached"
	case EventOutOfBounds:
		return "out_of_bounds"
	case EventStrokeIncremented:
		return "stroke_incremented"
	case EventBallStopped:
		return "ball_stopped"
	case EventBallReset:
		return "ball_reset"
	case EventGameOver:
		return "game_over"
	}
	return "unknown"
}

func (k EventKind) MarshalText() ([]byte, error)  { return []byte(k.String()), nil }
func (k HazardKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k BodyKind) MarshalText() ([]byte, error)   { return []byte(k.String()), nil }

// Event is one discrete core event. Only the fields relevant to Kind are set.
type Event struct {
	Kind        EventKind  `json:"kind"`
	Body        *BodyRef   `json:"body,omitempty"`
	ImpactSpeed float64    `json:"impact_speed,omitempty"`
	Hazard      HazardKind `json:"hazard,omitempty"`
	Strokes     int        `json:"strokes,omitempty"`
	Position    *Vec2      `json:"position,omitempty"`
}

func bouncedEvent(c Contact) Event {
	body := c.Body
	return Event{Kind: EventBounced, Body: &body, ImpactSpeed: c.ImpactSpeed}
}

func hazardEvent(kind HazardKind) Event {
	return Event{Kind: EventEnteredHazard, Hazard: kind}
}
