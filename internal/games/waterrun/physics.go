package waterrun

// Player is the runner's vertical state. Y is the height of the feet and
// never drops below the ground constant.
type Player struct {
	Y        float64
	VY       float64
	Airborne bool
	Lives    int
}

// canJump reports whether a jump may start: grounded and exactly on the ground.
func (p *Player) canJump(ground float64) bool {
	return !p.Airborne && p.Y == ground
}

// jump applies the impulse.
func (p *Player) jump(impulse float64) {
	p.VY = impulse
	p.Airborne = true
}

// integrate advances one explicit Euler step and reports a landing.
func (p *Player) integrate(gravity, ground float64) bool {
	if !p.Airborne {
		return false
	}
	p.VY -= gravity
	p.Y += p.VY
	if p.Y <= ground {
		p.Y = ground
		p.VY = 0
		p.Airborne = false
		return true
	}
	return false
}

// maxAirTicks bounds Airtime for degenerate inputs.
const maxAirTicks = 100000

// Airtime returns how many ticks a jump with impulse v0 under gravity g stays
// airborne, and its peak height above the ground.
func Airtime(v0, g float64) (ticks int, peak float64) {
	if v0 <= 0 || g <= 0 {
		return 0, 0
	}
	p := Player{}
	p.jump(v0)
	for ticks < maxAirTicks {
		ticks++
		if p.integrate(g, 0) {
			return ticks, peak
		}
		if p.Y > peak {
			peak = p.Y
		}
	}
	return ticks, peak
}
