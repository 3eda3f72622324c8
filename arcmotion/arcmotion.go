// Package arcmotion expands a G2/G3 arc intent into a sequence of
// straight chords fed into the planner, the only admission path an arc
// command has (spec §4.2).
package arcmotion

import (
	"github.com/orsinium-labs/tinymath"

	"tinygo.org/x/grblmotion/kinematics"
	"tinygo.org/x/grblmotion/planner"
)

const numAxes = kinematics.NumAxes

// CustomError is a lightweight error type in the teacher's idiom.
type CustomError string

func (e CustomError) Error() string { return string(e) }

const (
	// ErrDegenerateArc covers both a too-small radius and the
	// unsupported full-circle case (start coincides with target).
	ErrDegenerateArc CustomError = "degenerate arc"
	// ErrUnsupportedPlane names the rejection of an arc plane other than
	// XY (G17). Expand takes no plane argument and always works in XY,
	// so it never returns this error itself.
	ErrUnsupportedPlane CustomError = "unsupported arc plane"
)

// minRadiusMM is the smallest admissible arc radius (spec §4.2: "Rejects
// radius < 1 µm").
const minRadiusMM float32 = 0.001

// maxSegments bounds chord count regardless of how fine arc_tolerance
// is set, keeping a single arc command's cost bounded.
const maxSegments = 100

// Expand computes the chord sequence for a G2 (clockwise=true) or G3
// (clockwise=false) arc from start to target in the XY plane, with
// center = start + (offsetI, offsetJ), and feeds each chord into p via
// BufferLine. Z and A are linearly interpolated across the chords.
func Expand(p *planner.Planner, settings *kinematics.Settings, start, target [numAxes]float32, offsetI, offsetJ float32, clockwise bool, feedRate float32, cond planner.Condition) error {
	centerX := start[kinematics.AxisX] + offsetI
	centerY := start[kinematics.AxisY] + offsetJ

	dxStart := start[kinematics.AxisX] - centerX
	dyStart := start[kinematics.AxisY] - centerY
	radius := tinymath.Sqrt(dxStart*dxStart + dyStart*dyStart)
	if radius < minRadiusMM {
		return ErrDegenerateArc
	}

	dxEnd := target[kinematics.AxisX] - centerX
	dyEnd := target[kinematics.AxisY] - centerY

	startAngle := tinymath.Atan2(dyStart, dxStart)
	endAngle := tinymath.Atan2(dyEnd, dxEnd)

	travel := angularTravel(startAngle, endAngle, clockwise)
	if tinymath.Abs(travel) < 1e-6 {
		// Coincident start/target around a nonzero radius is a full
		// circle; the core does not implement full circles (spec §4.2).
		return ErrDegenerateArc
	}

	tol := settings.ArcToleranceMM()
	n := segmentCount(travel, radius, tol)

	for i := 1; i <= n; i++ {
		frac := float32(i) / float32(n)
		angle := startAngle + travel*frac

		chord := target
		chord[kinematics.AxisX] = centerX + radius*tinymath.Cos(angle)
		chord[kinematics.AxisY] = centerY + radius*tinymath.Sin(angle)
		for _, axis := range []int{kinematics.AxisZ, kinematics.AxisA} {
			chord[axis] = start[axis] + (target[axis]-start[axis])*frac
		}
		if i == n {
			// Land exactly on the commanded target rather than
			// accumulated trig error.
			chord = target
		}

		if err := p.BufferLine(chord, feedRate, cond); err != nil {
			return err
		}
	}
	return nil
}

// angularTravel computes the signed angle swept from startAngle to
// endAngle, honoring the requested rotation sense and then folding any
// resulting sweep greater than a half turn to the shorter arc (spec
// §4.2: "long-way (|Δθ|>π) is folded to the short way").
func angularTravel(startAngle, endAngle float32, clockwise bool) float32 {
	twoPi := 2 * tinymath.Pi

	raw := endAngle - startAngle
	if clockwise {
		if raw >= 0 {
			raw -= twoPi
		}
	} else {
		if raw <= 0 {
			raw += twoPi
		}
	}

	if raw > tinymath.Pi {
		raw -= twoPi
	}
	if raw < -tinymath.Pi {
		raw += twoPi
	}
	return raw
}

// segmentCount is spec §4.2's chord-count formula, clamped to [1, 100].
func segmentCount(travel, radius, tol float32) int {
	absTravel := tinymath.Abs(travel)
	denom := 2 * tinymath.Sqrt(tol*(2*radius-tol))
	if denom <= 0 {
		return maxSegments
	}
	n := int(tinymath.Ceil(absTravel * radius / denom))
	if n < 1 {
		n = 1
	}
	if n > maxSegments {
		n = maxSegments
	}
	return n
}
