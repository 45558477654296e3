package beam

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Bigaussian draws n macro-particles with independent Gaussian time and
// energy offsets. The same seed always yields the same coordinates.
func Bigaussian(n int, meanDt, sigmaDt, sigmaDE float64, seed uint64) (dt, dE []float64, err error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("bigaussian: need at least one particle, got %d", n)
	}
	if !(sigmaDt > 0) || sigmaDE < 0 {
		return nil, nil, fmt.Errorf("bigaussian: invalid spreads sigma_dt=%g sigma_dE=%g", sigmaDt, sigmaDE)
	}

	timeDist := distuv.Normal{Mu: meanDt, Sigma: sigmaDt, Src: rand.NewPCG(seed, 1)}
	dt = make([]float64, n)
	for i := range dt {
		dt[i] = timeDist.Rand()
	}

	dE = make([]float64, n)
	if sigmaDE > 0 {
		energyDist := distuv.Normal{Mu: 0, Sigma: sigmaDE, Src: rand.NewPCG(seed, 2)}
		for i := range dE {
			dE[i] = energyDist.Rand()
		}
	}
	return dt, dE, nil
}
