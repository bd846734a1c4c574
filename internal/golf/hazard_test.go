package golf

import "testing"

func TestHazardFieldClassify(t *testing.T) {
	field := NewHazardField([]HazardZone{
		{Kind: HazardWater, Bounds: Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}},
		{Kind: HazardSand, Bounds: Rect{MinX: 50, MinY: 50, MaxX: 150, MaxY: 150}},
		{Kind: HazardWind, Bounds: Rect{MinX: 0, MinY: 0, MaxX: 200, MaxY: 200}, Force: Vec2{X: 10}},
		{Kind: HazardWind, Bounds: Rect{MinX: 75, MinY: 75, MaxX: 200, MaxY: 200}, Force: Vec2{Y: -5}},
	})

	tests := []struct {
		name  string
		point Vec2
		water bool
		sand  bool
		winds int
	}{
		{"water only plus wide wind", Vec2{X: 10, Y: 10}, true, false, 1},
		{"water and sand overlap", Vec2{X: 60, Y: 60}, true, true, 1},
		{"edge is inclusive", Vec2{X: 100, Y: 100}, true, true, 2},
		{"sand and both winds", Vec2{X: 120, Y: 120}, false, true, 2},
		{"outside everything", Vec2{X: 500, Y: 500}, false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := field.Classify(tt.point)
			if fx.Water != tt.water {
				t.Errorf("water = %v, want %v", fx.Water, tt.water)
			}
			if fx.Sand != tt.sand {
				t.Errorf("sand = %v, want %v", fx.Sand, tt.sand)
			}
			if len(fx.Wind) != tt.winds {
				t.Errorf("wind forces = %d, want %d", len(fx.Wind), tt.winds)
			}
			if fx.Has(HazardWind) != (tt.winds > 0) {
				t.Errorf("Has(wind) disagrees with wind list")
			}
		})
	}
}

func TestNilHazardFieldIsEmpty(t *testing.T) {
	var field *HazardField
	fx := field.Classify(Vec2{X: 1, Y: 1})
	if fx.Water || fx.Sand || len(fx.Wind) != 0 {
		t.Errorf("nil field classified %+v", fx)
	}
}
