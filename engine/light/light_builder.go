package light

import "github.com/Carmen-Shannon/oxy-orbs/common"

type LightBuilderOption func(*pointLight)

// WithPosition sets the initial world-space position.
func WithPosition(p common.Vec3) LightBuilderOption {
	return func(l *pointLight) {
		l.position = p
	}
}

// WithColor sets the sRGB colour of the light.
//
// Parameters:
//   - c: the authored colour
//
// Returns:
//   - LightBuilderOption: a function that sets the colour
func WithColor(c common.Color) LightBuilderOption {
	return func(l *pointLight) {
		l.color = c
	}
}

// WithIntensity sets the luminous power in lumens.
//
// Parameters:
//   - lumens: luminous power
//
// Returns:
//   - LightBuilderOption: a function that sets the intensity
func WithIntensity(lumens float32) LightBuilderOption {
	return func(l *pointLight) {
		l.intensity = lumens
	}
}

// WithRadius sets the radius of the emitting sphere.
func WithRadius(radius float32) LightBuilderOption {
	return func(l *pointLight) {
		l.radius = radius
	}
}

// WithRange sets the attenuation cutoff distance.
func WithRange(r float32) LightBuilderOption {
	return func(l *pointLight) {
		l.lightRange = r
	}
}

// WithEnabled sets whether the light starts enabled.
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *pointLight) {
		l.enabled = enabled
	}
}
