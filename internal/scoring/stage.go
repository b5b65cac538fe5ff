package scoring

import "math"

// DefaultBenchmark is the expected dwell time, in days, for stages missing
// from the benchmark table.
const DefaultBenchmark = 10

const decayRate = 0.15

// StageBenchmark is the expected number of days an opportunity spends in a
// pipeline stage.
type StageBenchmark struct {
	Stage         string `json:"stage"`
	BenchmarkDays int    `json:"benchmarkDays"`
}

// stageBenchmarks is kept in pipeline order.
var stageBenchmarks = []StageBenchmark{
	{Stage: "Prospecting", BenchmarkDays: 10},
	{Stage: "Qualification", BenchmarkDays: 15},
	{Stage: "Needs Analysis", BenchmarkDays: 10},
	{Stage: "Proposal", BenchmarkDays: 12},
	{Stage: "Negotiation", BenchmarkDays: 8},
	{Stage: "Closed Won", BenchmarkDays: 5},
	{Stage: "Closed Lost", BenchmarkDays: 5},
}

var benchmarkByStage = func() map[string]int {
	m := make(map[string]int, len(stageBenchmarks))
	for _, b := range stageBenchmarks {
		m[b.Stage] = b.BenchmarkDays
	}
	return m
}()

// Benchmarks returns a copy of the benchmark table in pipeline order.
func Benchmarks() []StageBenchmark {
	out := make([]StageBenchmark, len(stageBenchmarks))
	copy(out, stageBenchmarks)
	return out
}

// Benchmark returns the expected days for stage. Stage names are matched
// exactly; unknown stages get DefaultBenchmark.
func Benchmark(stage string) int {
	if days, ok := benchmarkByStage[stage]; ok {
		return days
	}
	return DefaultBenchmark
}

// StageDuration scores time spent in stage against its benchmark. At or
// ahead of pace scores 100; beyond it the score decays exponentially toward
// 0. The result is rounded to two decimal places.
func StageDuration(stage string, daysInStage int) float64 {
	diff := daysInStage - Benchmark(stage)
	if diff <= 0 {
		return 100
	}
	return round2(math.Min(100, math.Exp(-decayRate*float64(diff))*100))
}
