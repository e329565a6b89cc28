package spacerocks

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestThrottleSet(t *testing.T) {
	var tests = []struct {
		name       string
		reversible bool
		in, want   float32
	}{
		{"forward full", false, 1, 1},
		{"forward over", false, 3, 1},
		{"forward negative", false, -0.5, 0},
		{"reversible negative", true, -0.5, -0.5},
		{"reversible under", true, -2, -1},
		{"reversible over", true, 1.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := NewThrottle(tt.reversible)
			if got := th.Set(tt.in); got != tt.want {
				t.Errorf("Set(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if th.Value() != tt.want {
				t.Errorf("Value() = %v, want %v", th.Value(), tt.want)
			}
			if th.Reversible() != tt.reversible {
				t.Errorf("Reversible() = %v", th.Reversible())
			}
		})
	}
}

func TestEngineStep(t *testing.T) {
	var tests = []struct {
		name       string
		reversible bool
		rate       float32
		target     float32
		steps      int
		want       float32
	}{
		{"ramps up", false, 2, 1, 1, 0.5},
		{"reaches target", false, 2, 1, 3, 1},
		{"snaps without rate", false, 0, 1, 1, 1},
		{"one-directional ignores reverse", false, 2, -1, 4, 0},
		{"reversible ramps down", true, 2, -1, 1, -0.5},
		{"reversible snaps", true, 0, -1, 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := EngineComponent{Throttle: NewThrottle(tt.reversible), Rate: tt.rate, Target: tt.target}
			for i := 0; i < tt.steps; i++ {
				e.Step(0.25)
			}
			if got := e.Throttle.Value(); got != tt.want {
				t.Errorf("throttle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngineLocalForce(t *testing.T) {
	e := EngineComponent{Throttle: NewThrottle(false), Direction: mgl32.Vec2{2, 0}, MaxForce: 50, MaxTorque: 3}
	e.Throttle.Set(0.5)
	if got := e.LocalForce(); !nearVec(got, mgl32.Vec2{25, 0}) {
		t.Errorf("LocalForce() = %v, want (25,0)", got)
	}
	if got := e.LocalTorque(); got != 1.5 {
		t.Errorf("LocalTorque() = %v, want 1.5", got)
	}

	e.Direction = mgl32.Vec2{}
	if got := e.LocalForce(); got != (mgl32.Vec2{}) {
		t.Errorf("LocalForce() without direction = %v", got)
	}
}

// engineAt builds a body-less engine child at full throttle.
func engineAt(offset mgl32.Vec2, angle float32, eb EngineBuilder) Builder {
	return Chain(
		At(offset, angle),
		eb,
		BuilderFunc(func(e *Entity) { e.Engine.Throttle.Set(1) }),
	)
}

func TestForceSystem(t *testing.T) {
	var tests = []struct {
		name       string
		bodyAngle  float32
		offset     mgl32.Vec2
		angle      float32
		engine     EngineBuilder
		wantForce  mgl32.Vec2
		wantTorque float32
	}{
		{
			name:      "centred engine",
			engine:    EngineBuilder{Direction: mgl32.Vec2{1, 0}, MaxForce: 100},
			wantForce: mgl32.Vec2{100, 0},
		},
		{
			name:      "rotated body",
			bodyAngle: 90,
			offset:    mgl32.Vec2{-10, 0},
			engine:    EngineBuilder{Direction: mgl32.Vec2{1, 0}, MaxForce: 100},
			wantForce: mgl32.Vec2{0, 100},
		},
		{
			name:       "off-centre engine adds torque",
			offset:     mgl32.Vec2{0, 10},
			engine:     EngineBuilder{Direction: mgl32.Vec2{1, 0}, MaxForce: 100},
			wantForce:  mgl32.Vec2{100, 0},
			wantTorque: -1000,
		},
		{
			name:      "rotated mount",
			angle:     90,
			engine:    EngineBuilder{Direction: mgl32.Vec2{1, 0}, MaxForce: 100},
			wantForce: mgl32.Vec2{0, 100},
		},
		{
			name:       "pure torque",
			engine:     EngineBuilder{MaxTorque: 5, Reversible: true},
			wantTorque: 5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ship := NewEntity(
				DynamicBody(BodyComponent{Angle: tt.bodyAngle}),
				WithChild(engineAt(tt.offset, tt.angle, tt.engine)),
			)
			fs := &ForceSystem{}
			ship.each(fs.Add)
			fs.Update(1.0 / 60)

			if !nearVec(ship.Force.Force, tt.wantForce) {
				t.Errorf("force = %v, want %v", ship.Force.Force, tt.wantForce)
			}
			if !near(ship.Force.Torque, tt.wantTorque) {
				t.Errorf("torque = %v, want %v", ship.Force.Torque, tt.wantTorque)
			}
		})
	}
}

func TestForceSystemNestedChildren(t *testing.T) {
	// An engine two levels down still pushes the hull, through both mounts.
	ship := NewEntity(
		DynamicBody(BodyComponent{}),
		WithChild(Chain(
			At(mgl32.Vec2{5, 0}, 90),
			WithChild(engineAt(mgl32.Vec2{5, 0}, 0, EngineBuilder{Direction: mgl32.Vec2{1, 0}, MaxForce: 10})),
		)),
	)
	fs := &ForceSystem{}
	ship.each(fs.Add)
	fs.Update(1.0 / 60)

	if !nearVec(ship.Force.Force, mgl32.Vec2{0, 10}) {
		t.Errorf("force = %v, want (0,10)", ship.Force.Force)
	}
	// Engine sits at (5,5) in the hull frame pushing +Y.
	if !near(ship.Force.Torque, 50) {
		t.Errorf("torque = %v, want 50", ship.Force.Torque)
	}
}

func TestForceSystemResetsEachFrame(t *testing.T) {
	ship := NewEntity(
		DynamicBody(BodyComponent{}),
		WithChild(engineAt(mgl32.Vec2{}, 0, EngineBuilder{Direction: mgl32.Vec2{1, 0}, MaxForce: 10})),
	)
	fs := &ForceSystem{}
	ship.each(fs.Add)
	fs.Update(1.0 / 60)
	fs.Update(1.0 / 60)
	if !nearVec(ship.Force.Force, mgl32.Vec2{10, 0}) {
		t.Errorf("force = %v, want (10,0)", ship.Force.Force)
	}

	ship.Children[0].Engine.Throttle.Set(0)
	fs.Update(1.0 / 60)
	if !nearVec(ship.Force.Force, mgl32.Vec2{}) {
		t.Errorf("force after cut = %v, want zero", ship.Force.Force)
	}
}

func TestControlSystem(t *testing.T) {
	cfg := DefaultConfig()
	ship := NewEntity(ShipBuilder{Ship: cfg.Ship, Weapon: cfg.Weapon, Particles: cfg.Particles})
	cs := &ControlSystem{}
	ship.each(cs.Add)

	ship.Input.Forward = true
	ship.Input.Left = true
	ship.Input.SwayRight = true
	ship.Input.Attack = true
	cs.Update(1.0 / 60)

	var thrust, retro, sway, turn *EngineComponent
	var weapon *WeaponComponent
	for _, c := range ship.Children {
		switch {
		case c.Weapon != nil:
			weapon = c.Weapon
		case c.Engine == nil:
		case c.Engine.Axis == AxisTurn:
			turn = c.Engine
		case c.Engine.Axis == AxisSway:
			sway = c.Engine
		case c.Engine.Scale > 0:
			thrust = c.Engine
		default:
			retro = c.Engine
		}
	}
	if thrust == nil || retro == nil || sway == nil || turn == nil || weapon == nil {
		t.Fatalf("ship is missing parts: %v %v %v %v %v", thrust, retro, sway, turn, weapon)
	}
	if thrust.Target != 1 {
		t.Errorf("main engine target = %v, want 1", thrust.Target)
	}
	if retro.Target != -1 {
		t.Errorf("retro target = %v, want -1", retro.Target)
	}
	if sway.Target != 1 {
		t.Errorf("sway target = %v, want 1", sway.Target)
	}
	if turn.Target != -1 {
		t.Errorf("turn target = %v, want -1", turn.Target)
	}
	if !weapon.Trigger {
		t.Error("weapon not triggered")
	}

	// The retro engine is one-directional, so a negative target idles it.
	retro.Step(1)
	if retro.Throttle.Value() != 0 {
		t.Errorf("retro throttle = %v, want 0", retro.Throttle.Value())
	}
}

func TestSwayEngine(t *testing.T) {
	var tests = []struct {
		name  string
		left  bool
		right bool
		want  float32
	}{
		{"right", false, true, 1},
		{"left", true, false, -1},
		{"both cancel", true, true, 0},
		{"idle", false, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			ship := NewEntity(ShipBuilder{Ship: cfg.Ship, Weapon: cfg.Weapon, Particles: cfg.Particles})
			cs := &ControlSystem{}
			es := &EngineSystem{}
			fs := &ForceSystem{}
			ship.each(cs.Add)
			ship.each(es.Add)
			ship.each(fs.Add)

			ship.Input.SwayLeft = tt.left
			ship.Input.SwayRight = tt.right
			// Long enough for the throttle to slew all the way.
			for i := 0; i < 120; i++ {
				cs.Update(1.0 / 60)
				es.Update(1.0 / 60)
			}
			fs.Update(1.0 / 60)

			// The hull faces +X, so its right side is +Y.
			want := mgl32.Vec2{0, tt.want * cfg.Ship.SwayForce}
			if !nearVec(ship.Force.Force, want) {
				t.Errorf("force = %v, want %v", ship.Force.Force, want)
			}
			if !near(ship.Force.Torque, 0) {
				t.Errorf("sway engine twists the hull: torque %v", ship.Force.Torque)
			}
		})
	}
}
