// Package workload samples the arrival process that seeds a simulation run.
package workload

import "math/rand"

// SampleArrivalTimes draws n inter-arrival gaps from an exponential
// distribution with the given mean interval (hours) and returns their
// cumulative sums: the absolute arrival times of a homogeneous Poisson
// process at rate 1/meanInterval.
//
// The whole batch is drawn up front so the driver's draw order stays fixed;
// callers must not interleave other draws from rng while sampling.
func SampleArrivalTimes(rng *rand.Rand, n int, meanInterval float64) []float64 {
	times := make([]float64, n)
	t := 0.0
	for i := range times {
		t += rng.ExpFloat64() * meanInterval
		times[i] = t
	}
	return times
}
