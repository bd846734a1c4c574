package golf

// HazardKind tags a hazard zone.
type HazardKind uint8

const (
	HazardWater HazardKind = iota + 1
	HazardSand
	HazardWind
)

func (k HazardKind) String() string {
	switch k {
	case HazardWater:
		return "water"
	case HazardSand:
		return "sand"
	case HazardWind:
		return "wind"
	}
	return "unknown"
}

// HazardZone is an axis-aligned region with a gameplay effect. Force is only
// meaningful for wind zones.
type HazardZone struct {
	Kind   HazardKind `json:"kind"`
	Bounds Rect       `json:"bounds"`
	Force  Vec2       `json:"force,omitempty"`
}

// HazardEffects is the classification of a single point against every zone.
type HazardEffects struct {
	Water bool
	Sand  bool
	// Wind holds the force vector of each wind zone containing the point.
	Wind []Vec2
}

// Has reports whether the effect set includes the given kind.
func (e HazardEffects) Has(kind HazardKind) bool {
	switch kind {
	case HazardWater:
		return e.Water
	case HazardSand:
		return e.Sand
	case HazardWind:
		return len(e.Wind) > 0
	}
	return false
}

// HazardField classifies world points against a fixed set of zones.
type HazardField struct {
	Zones []HazardZone
}

func NewHazardField(zones []HazardZone) *HazardField {
	return &HazardField{Zones: zones}
}

// Classify tests p against every zone.
func (h *HazardField) Classify(p Vec2) HazardEffects {
	var fx HazardEffects
	if h == nil {
		return fx
	}
	for i := range h.Zones {
		z := &h.Zones[i]
		if !z.Bounds.Contains(p) {
			continue
		}
		switch z.Kind {
		case HazardWater:
			fx.Water = true
		case HazardSand:
			fx.Sand = true
		case HazardWind:
			fx.Wind = append(fx.Wind, z.Force)
		}
	}
	return fx
}
