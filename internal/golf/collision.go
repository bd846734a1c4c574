package golf

import "math"

// Contact describes one resolved ball contact.
type Contact struct {
	Body        BodyRef
	Normal      Vec2
	Penetration float64
	// ImpactSpeed is the inbound normal speed; zero when the ball was already separating.
	ImpactSpeed float64
	Bounced     bool
}

// CollisionResolver pushes the ball out of course geometry and applies the
// contact response. Stages run in a fixed priority order; each stage sees
// the ball as repositioned by the previous one.
type CollisionResolver struct {
	course *Course
	tuning Tuning
}

func NewCollisionResolver(course *Course, tuning Tuning) *CollisionResolver {
	return &CollisionResolver{course: course, tuning: tuning}
}

// Resolve runs terrain, platforms, bouncers, static obstacles, then moving
// obstacles, and returns the contacts found in that order.
func (r *CollisionResolver) Resolve(ball *Ball, dt float64) []Contact {
	var contacts []Contact
	c := r.course

	if contact, ok := r.resolveTerrain(ball, dt); ok {
		contacts = append(contacts, contact)
	}
	for i := range c.Platforms {
		if contact, ok := ResolveCircleRect(ball, &c.Platforms[i], r.tuning.GroundedDot); ok {
			contact.Body.Index = i
			contacts = append(contacts, contact)
		}
	}
	for i := range c.Bouncers {
		if contact, ok := ResolveCircleRect(ball, &c.Bouncers[i], r.tuning.GroundedDot); ok {
			contact.Body.Index = i
			contacts = append(contacts, contact)
		}
	}
	for i, s := range c.Static {
		if contact, ok := resolveShape(ball, s, r.tuning.GroundedDot); ok {
			contact.Body = BodyRef{Kind: BodyStaticObstacle, Index: i}
			contacts = append(contacts, contact)
		}
	}
	for i, m := range c.Moving {
		if contact, ok := resolveShape(ball, m.Shape, r.tuning.GroundedDot); ok {
			contact.Body = BodyRef{Kind: BodyMovingObstacle, Index: i}
			contacts = append(contacts, contact)
		}
	}
	return contacts
}

func resolveShape(ball *Ball, s Shape, groundedDot float64) (Contact, bool) {
	switch body := s.(type) {
	case *RectBody:
		return ResolveCircleRect(ball, body, groundedDot)
	case *CircleBody:
		return ResolveCircleCircle(ball, body, groundedDot)
	}
	return Contact{}, false
}

// resolveTerrain handles ball vs terrain. Slow inbound contacts are absorbed
// so the ball rolls instead of micro-bouncing; grounded contacts also get
// rolling friction.
func (r *CollisionResolver) resolveTerrain(ball *Ball, dt float64) (Contact, bool) {
	c := r.course
	if len(c.Terrain.Points) == 0 || keepInShaft(c, ball) || c.InHoleGap(ball.Position.X) {
		return Contact{}, false
	}

	s := c.Terrain.Sample(ball.Position.X)
	n := s.Normal
	dist := ball.Position.Minus(s.Point).Dot(n)
	if dist >= ball.Radius {
		return Contact{}, false
	}

	pen := ball.Radius - dist
	ball.Position = ball.Position.Plus(n.Times(pen))
	contact := Contact{
		Body:        BodyRef{Kind: BodyTerrain},
		Normal:      n,
		Penetration: pen,
	}

	vn := ball.Velocity.Dot(n)
	if vn < 0 {
		tangent := ball.Velocity.Minus(n.Times(vn))
		if -vn < r.tuning.AbsorbSpeed {
			ball.Velocity = tangent
		} else {
			ball.Velocity = tangent.Plus(n.Times(-vn * r.tuning.TerrainRestitution))
			contact.ImpactSpeed = -vn
			contact.Bounced = true
		}
	}

	if n.Dot(Up) > r.tuning.GroundedDot {
		ball.OnGround = true
		r.applyRollingFriction(ball, n, dt)
	}
	return contact, true
}

// keepInShaft holds a ball that has dropped below the lip of the hole between
// the shaft walls at Hole.X±HoleGapHalf, stopping any outward motion. It
// reports whether the ball is in the shaft.
func keepInShaft(c *Course, ball *Ball) bool {
	dx := ball.Position.X - c.Hole.X
	if math.Abs(dx) > HoleGapHalf+ball.Radius {
		return false
	}
	side := 1.0
	if dx < 0 {
		side = -1
	}
	edge := c.Hole.X + side*HoleGapHalf
	if ball.Position.Y <= c.Terrain.Sample(edge).Point.Y {
		return false
	}
	if math.Abs(dx) > HoleGapHalf {
		ball.Position.X = edge
		if ball.Velocity.X*side > 0 {
			ball.Velocity.X = 0
		}
	}
	return true
}

// applyRollingFriction decays the speed along the surface and snaps
// near-zero speeds to rest.
func (r *CollisionResolver) applyRollingFriction(ball *Ball, n Vec2, dt float64) {
	tangent := Vec2{X: -n.Y, Y: n.X}
	vt := ball.Velocity.Dot(tangent)
	vn := ball.Velocity.Dot(n)

	vt *= math.Max(0, 1-r.tuning.RollingFriction*dt)
	if math.Abs(vt) < r.tuning.RollStopSpeed {
		vt = 0
	}
	ball.Velocity = tangent.Times(vt).Plus(n.Times(vn))
}

// ResolveCircleRect pushes the ball out of a rotated rectangle and applies
// restitution along the contact normal and friction along the tangent.
func ResolveCircleRect(ball *Ball, rect *RectBody, groundedDot float64) (Contact, bool) {
	hw, hh := rect.Width/2, rect.Height/2
	local := ball.Position.Minus(rect.Center).Rotate(-rect.Angle)
	closest := Vec2{X: clampf(local.X, -hw, hw), Y: clampf(local.Y, -hh, hh)}
	diff := local.Minus(closest)
	d2 := diff.MagnitudeSquared()
	if d2 >= ball.Radius*ball.Radius {
		return Contact{}, false
	}

	var nLocal Vec2
	var pen float64
	if d2 > 1e-12 {
		d := math.Sqrt(d2)
		nLocal = diff.Times(1 / d)
		pen = ball.Radius - d
	} else {
		// Centre is inside the box: leave through the nearest face.
		depth := local.X + hw
		nLocal = Vec2{X: -1}
		if right := hw - local.X; right < depth {
			depth, nLocal = right, Vec2{X: 1}
		}
		if top := local.Y + hh; top < depth {
			depth, nLocal = top, Vec2{Y: -1}
		}
		if bottom := hh - local.Y; bottom < depth {
			depth, nLocal = bottom, Vec2{Y: 1}
		}
		pen = depth + ball.Radius
	}

	n := nLocal.Rotate(rect.Angle)
	ball.Position = ball.Position.Plus(n.Times(pen))
	impact := respond(ball, n, rect.Friction, rect.Restitution)
	if n.Dot(Up) > groundedDot {
		ball.OnGround = true
	}
	return Contact{
		Body:        BodyRef{Kind: rect.Kind},
		Normal:      n,
		Penetration: pen,
		ImpactSpeed: impact,
		Bounced:     impact > 0,
	}, true
}

// ResolveCircleCircle separates the ball from a solid circle along the
// centre-to-centre axis.
func ResolveCircleCircle(ball *Ball, circle *CircleBody, groundedDot float64) (Contact, bool) {
	delta := ball.Position.Minus(circle.Center)
	minDist := ball.Radius + circle.Radius
	d2 := delta.MagnitudeSquared()
	if d2 >= minDist*minDist {
		return Contact{}, false
	}

	d := math.Sqrt(d2)
	n := delta.NormalizeOr(Up)
	pen := minDist - d
	ball.Position = ball.Position.Plus(n.Times(pen))
	impact := respond(ball, n, circle.Friction, circle.Restitution)
	if n.Dot(Up) > groundedDot {
		ball.OnGround = true
	}
	return Contact{
		Body:        BodyRef{Kind: circle.Kind},
		Normal:      n,
		Penetration: pen,
		ImpactSpeed: impact,
		Bounced:     impact > 0,
	}, true
}

// respond reflects the inbound normal velocity scaled by restitution and
// scales the tangential part by (1 - friction). Restitution above 1 adds
// energy; bouncers rely on it. Returns the inbound normal speed.
func respond(ball *Ball, n Vec2, friction, restitution float64) float64 {
	vn := ball.Velocity.Dot(n)
	if vn >= 0 {
		return 0
	}
	tangent := ball.Velocity.Minus(n.Times(vn))
	ball.Velocity = tangent.Times(1 - friction).Plus(n.Times(-vn * restitution))
	return -vn
}
