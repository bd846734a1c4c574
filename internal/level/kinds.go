package level

import "fmt"

// HazardKind discriminates HazardSpec entries.
type HazardKind string

const (
	HazardWater   HazardKind = "water"
	HazardSand    HazardKind = "sand"
	HazardWind    HazardKind = "wind"
	HazardBouncer HazardKind = "bouncer"
)

func (k HazardKind) Valid() bool {
	switch k {
	case HazardWater, HazardSand, HazardWind, HazardBouncer:
		return true
	}
	return false
}

func (k *HazardKind) UnmarshalText(b []byte) error {
	v := HazardKind(b)
	if !v.Valid() {
		return fmt.Errorf("unknown hazard kind %q: %w", v, ErrInvalidLevel)
	}
	*k = v
	return nil
}

// ObstacleKind discriminates static from moving obstacles.
type ObstacleKind string

const (
	ObstacleStatic ObstacleKind = "static"
	ObstacleMoving ObstacleKind = "moving"
)

func (k ObstacleKind) Valid() bool {
	return k == ObstacleStatic || k == ObstacleMoving
}

func (k *ObstacleKind) UnmarshalText(b []byte) error {
	v := ObstacleKind(b)
	if !v.Valid() {
		return fmt.Errorf("unknown obstacle kind %q: %w", v, ErrInvalidLevel)
	}
	*k = v
	return nil
}

// ShapeKind is the collision shape of an obstacle.
type ShapeKind string

const (
	ShapeRect   ShapeKind = "rect"
	ShapeCircle ShapeKind = "circle"
)

func (k ShapeKind) Valid() bool {
	return k == ShapeRect || k == ShapeCircle
}

func (k *ShapeKind) UnmarshalText(b []byte) error {
	v := ShapeKind(b)
	if !v.Valid() {
		return fmt.Errorf("unknown obstacle shape %q: %w", v, ErrInvalidLevel)
	}
	*k = v
	return nil
}
