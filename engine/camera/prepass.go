package camera

import "strings"

// Prepass is a bit set of the prepass outputs a camera requests before its main pass.
type Prepass uint8

const (
	// PrepassDepth writes scene depth before the main pass.
	PrepassDepth Prepass = 1 << iota
	// PrepassNormal writes view normals.
	PrepassNormal
	// PrepassMotionVector writes per-pixel screen-space motion.
	PrepassMotionVector
	// PrepassDeferred writes the G-buffer consumed by the deferred lighting pass.
	PrepassDeferred
)

// PrepassNone is the empty set.
const PrepassNone Prepass = 0

var prepassNames = []struct {
	flag Prepass
	name string
}{
	{PrepassDepth, "Depth"},
	{PrepassNormal, "Normal"},
	{PrepassMotionVector, "MotionVector"},
	{PrepassDeferred, "Deferred"},
}

// Has reports whether every flag in f is set.
func (p Prepass) Has(f Prepass) bool { return p&f == f }

// With returns p with the flags in f set.
func (p Prepass) With(f Prepass) Prepass { return p | f }

// Without returns p with the flags in f cleared.
func (p Prepass) Without(f Prepass) Prepass { return p &^ f }

func (p Prepass) String() string {
	if p == PrepassNone {
		return "None"
	}
	var parts []string
	for _, n := range prepassNames {
		if p.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

func combine(flags []Prepass) Prepass {
	var out Prepass
	for _, f := range flags {
		out |= f
	}
	return out
}
