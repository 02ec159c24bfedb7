package testkit

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"statref/domain/stats"
)

// Kit generates reproducible synthetic samples for property tests.
// The same seed always yields the same sequence of samples.
type Kit struct {
	seed uint64
	rng  *rand.Rand
}

// NewKit creates a generator seeded with seed
func NewKit(seed uint64) *Kit {
	return &Kit{seed: seed, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Seed returns the seed the kit was created with
func (k *Kit) Seed() uint64 {
	return k.seed
}

// Normal draws n observations from N(mu, sigma²)
func (k *Kit) Normal(n int, mu, sigma float64) stats.Sample {
	return k.draw(n, distuv.Normal{Mu: mu, Sigma: sigma, Src: k.rng})
}

// Uniform draws n observations from U[lo, hi)
func (k *Kit) Uniform(n int, lo, hi float64) stats.Sample {
	return k.draw(n, distuv.Uniform{Min: lo, Max: hi, Src: k.rng})
}

func (k *Kit) draw(n int, d distuv.Rander) stats.Sample {
	out := make(stats.Sample, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}

// Size returns a sample size in [min, max]
func (k *Kit) Size(min, max int) int {
	return min + k.rng.IntN(max-min+1)
}

// Samples returns count normal samples with sizes in [minN, maxN]
func (k *Kit) Samples(count, minN, maxN int, mu, sigma float64) []stats.Sample {
	out := make([]stats.Sample, count)
	for i := range out {
		out[i] = k.Normal(k.Size(minN, maxN), mu, sigma)
	}
	return out
}

// Grouped returns a GroupedSample of normal groups whose means step by shift
func (k *Kit) Grouped(groups, minN, maxN int, mu, sigma, shift float64) stats.GroupedSample {
	out := make(stats.GroupedSample, groups)
	for i := range out {
		out[i] = stats.Group{
			Label:  fmt.Sprintf("g%d", i+1),
			Values: k.Normal(k.Size(minN, maxN), mu+float64(i)*shift, sigma),
		}
	}
	return out
}

// Linear returns n pairs with y = intercept + slope·x + N(0, noise²)
// and x spread uniformly over [0, 100)
func (k *Kit) Linear(n int, intercept, slope, noise float64) stats.PairedSample {
	x := k.Uniform(n, 0, 100)
	y := k.Normal(n, 0, noise)
	for i, xi := range x {
		y[i] += intercept + slope*xi
	}
	return stats.PairedSample{X: x, Y: y}
}
