// Package lighting provides the single directional light used for shading.
package lighting

import (
	"fmt"
	"math"

	"github.com/Faultbox/boardview/internal/engine/gfx"
	vmath "github.com/Faultbox/boardview/pkg/math"
)

// Directional is a light infinitely far away.
type Directional struct {
	// Direction points from the scene towards the light.
	Direction vmath.Vec3
	Color     gfx.Color
}

// NewDirectional returns a light with a normalized direction.
func NewDirectional(direction vmath.Vec3, color gfx.Color) (Directional, error) {
	d, err := direction.Normalize()
	if err != nil {
		return Directional{}, fmt.Errorf("light direction: %w", err)
	}
	return Directional{Direction: d, Color: color}, nil
}

// SunDirection converts longitude/latitude in degrees to a unit vector
// pointing towards the sun. Longitude is rotation around Y from +Z towards
// +X, latitude is elevation above the horizon.
func SunDirection(longitude, latitude float32) vmath.Vec3 {
	lonRad := float64(longitude) * math.Pi / 180.0
	latRad := float64(latitude) * math.Pi / 180.0

	return vmath.V3(
		float32(math.Cos(latRad)*math.Sin(lonRad)),
		float32(math.Sin(latRad)),
		float32(math.Cos(latRad)*math.Cos(lonRad)),
	)
}
