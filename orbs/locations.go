package orbs

import "github.com/Carmen-Shannon/oxy-orbs/common"

// Locations are the world positions of the twelve orbs.
var Locations = [12]common.Vec3{
	{-0.15, 1.0, -2.0},
	{1.7, 1.07, -0.61},
	{0.21, 1.05, 1.99},
	{-2.16, 1.0, 0.01},
	{-2.2, 1.0, 2.13},
	{-1.06, 2.04, 1.02},
	{1.94, 1.02, 1.16},
	{0.91, 2.47, 0.83},
	{0.46, 2.48, -0.81},
	{-2.05, 0.93, -1.92},
	{-1.38, 2.46, -0.91},
	{-0.22, 3.48, 0.18},
}
