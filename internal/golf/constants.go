package golf

// Simulation constants. World units are pixels, time is seconds, y grows downward.
const (
	FixedStep        = 1.0 / 60.0
	MaxStepsPerFrame = 5

	BallRadius = 10.0

	// Launch power curve exponent: eases low-power control, flattens high power.
	PowerCurveExponent = 1.25

	// Hole shaft geometry around the hole x.
	HoleGapHalf = 16.0
	HoleDepth   = 24.0

	// Terrain samples emitted per control-point span.
	SamplesPerSpan = 16

	OutOfBoundsMargin = 60.0
)

// Tuning holds every adjustable physics and control parameter. Values are
// read once per round; DefaultTuning gives the shipped feel.
type Tuning struct {
	Gravity      float64 `json:"gravity"`
	MaxBallSpeed float64 `json:"max_ball_speed"`
	AirDrag      float64 `json:"air_drag"`
	SandDrag     float64 `json:"sand_drag"`
	WindScale    float64 `json:"wind_scale"`

	TerrainRestitution float64 `json:"terrain_restitution"`
	// Inbound normal speed below which terrain contact absorbs instead of bouncing.
	AbsorbSpeed      float64 `json:"absorb_speed"`
	RollingFriction  float64 `json:"rolling_friction"`
	RollStopSpeed    float64 `json:"roll_stop_speed"`
	GroundedDot      float64 `json:"grounded_dot"`
	BounceEventSpeed float64 `json:"bounce_event_speed"`

	StopSpeed    float64 `json:"stop_speed"`
	StopDuration float64 `json:"stop_duration"`

	AimRestSpeed    float64 `json:"aim_rest_speed"`
	CaptureRadius   float64 `json:"capture_radius"`
	MaxPullDistance float64 `json:"max_pull_distance"`
	MinPullDistance float64 `json:"min_pull_distance"`
	MinLaunchSpeed  float64 `json:"min_launch_speed"`
	MaxLaunchSpeed  float64 `json:"max_launch_speed"`

	FixedStep        float64 `json:"fixed_step"`
	MaxStepsPerFrame int     `json:"max_steps_per_frame"`
}

// DefaultTuning returns the default parameter set.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:      900,
		MaxBallSpeed: 1400,
		AirDrag:      0.05,
		SandDrag:     6,
		WindScale:    1,

		TerrainRestitution: 0.35,
		AbsorbSpeed:        60,
		RollingFriction:    1.5,
		RollStopSpeed:      4,
		GroundedDot:        0.5,
		BounceEventSpeed:   40,

		StopSpeed:    8,
		StopDuration: 0.5,

		AimRestSpeed:    5,
		CaptureRadius:   60,
		MaxPullDistance: 150,
		MinPullDistance: 10,
		MinLaunchSpeed:  150,
		MaxLaunchSpeed:  1100,

		FixedStep:        FixedStep,
		MaxStepsPerFrame: MaxStepsPerFrame,
	}
}
