package gfx

import "github.com/Faultbox/boardview/pkg/math"

// Shade evaluates the Lambert model every backend implements.
// normal and lightDir are expected to be unit vectors; lightDir points towards the light.
func Shade(albedo, lightColor Color, normal, lightDir math.Vec3) Color {
	diffuse := normal.Dot(lightDir)
	if diffuse < 0 {
		diffuse = 0
	}
	k := AmbientLight + (1-AmbientLight)*diffuse
	return Color{
		R: albedo.R * lightColor.R * k,
		G: albedo.G * lightColor.G * k,
		B: albedo.B * lightColor.B * k,
		A: albedo.A,
	}
}
