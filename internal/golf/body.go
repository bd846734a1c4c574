package golf

// BodyKind tags a rigid body by the role it plays in collision resolution.
type BodyKind uint8

const (
	BodyTerrain BodyKind = iota
	BodyPlatform
	BodyBouncer
	BodyStaticObstacle
	BodyMovingObstacle
)

func (k BodyKind) String() string {
	switch k {
	case BodyTerrain:
		return "terrain"
	case BodyPlatform:
		return "platform"
	case BodyBouncer:
		return "bouncer"
	case BodyStaticObstacle:
		return "static_obstacle"
	case BodyMovingObstacle:
		return "moving_obstacle"
	}
	return "unknown"
}

// Ball is the single simulated ball.
type Ball struct {
	Position Vec2    `json:"position"`
	Velocity Vec2    `json:"velocity"`
	Radius   float64 `json:"radius"`
	OnGround bool    `json:"on_ground"`
}

// Speed returns the ball's current speed.
func (b *Ball) Speed() float64 {
	return b.Velocity.Magnitude()
}

// RectBody is a rotated rectangle. Restitution may exceed 1 on bouncers.
type RectBody struct {
	Kind        BodyKind `json:"kind"`
	Center      Vec2     `json:"center"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	Angle       float64  `json:"angle"` // radians
	Friction    float64  `json:"friction"`
	Restitution float64  `json:"restitution"`
}

// CircleBody is a solid circle.
type CircleBody struct {
	Kind        BodyKind `json:"kind"`
	Center      Vec2     `json:"center"`
	Radius      float64  `json:"radius"`
	Friction    float64  `json:"friction"`
	Restitution float64  `json:"restitution"`
}

// Shape is the closed set of collidable obstacle geometries.
type Shape interface {
	shape()
}

func (*RectBody) shape()   {}
func (*CircleBody) shape() {}

// BodyRef identifies the body involved in a contact: its kind and its index
// within that kind's list on the course.
type BodyRef struct {
	Kind  BodyKind `json:"kind"`
	Index int      `json:"index"`
}
