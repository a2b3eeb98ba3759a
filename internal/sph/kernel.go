package sph

import "math"

// -------------------------------
// Kernel Functions
// -------------------------------

// DensityKernel is the 2D smoothing kernel used for density estimation.
// It integrates to 1 over the disk of the given radius and falls to zero at
// the radius edge.
func DensityKernel(radius, dist float64) float64 {
	if dist >= radius {
		return 0
	}
	volume := math.Pi * math.Pow(radius, 4) / 6
	return (radius - dist) * (radius - dist) / volume
}

// DensityKernelDerivative is d/d(dist) of DensityKernel. Note the argument
// order is (dist, radius). It is negative inside the radius.
func DensityKernelDerivative(dist, radius float64) float64 {
	if dist >= radius {
		return 0
	}
	scale := 12 / (math.Pi * math.Pow(radius, 4))
	return (dist - radius) * scale
}
