package math3d

import (
	"math"

	"zappem.net/pub/math/geom"
)

func Deg(rads float64) float64 {
	return rads / (math.Pi / 180)
}

func Rad(degrees float64) float64 {
	return float64(geom.Degrees(degrees))
}
