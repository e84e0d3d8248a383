package filter

import (
	"math"

	"github.com/gogpu/compose/internal/cache"
)

// GaussianKernel generates a normalized 1D Gaussian kernel with standard
// deviation sigma. The kernel has 2*ceil(3*sigma)+1 taps, which covers
// 99.7% of the distribution. For sigma <= 0 it returns the identity [1].
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1}
	}

	half := int(math.Ceil(sigma * 3))
	kernel := make([]float32, 2*half+1)
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}
	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// kernels caches Gaussian kernels by radius quantized to 0.01.
var kernels = cache.New[float64, []float32](8, cache.Float64Hasher)

// Kernel returns a cached Gaussian kernel. The returned slice is shared and
// must not be modified.
func Kernel(sigma float64) []float32 {
	key := math.Round(sigma*100) / 100
	k, _ := kernels.GetOrCreate(key, func() ([]float32, error) {
		return GaussianKernel(key), nil
	})
	return k
}

// KernelStats reports kernel cache usage.
func KernelStats() cache.Stats { return kernels.Stats() }
