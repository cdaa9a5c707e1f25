package models

import "time"

// SystemMetrics is a lightweight aggregate snapshot exposed on the readiness
// surface. The full collector set lives in the Prometheus registry.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	SolverRuns               uint64    `json:"solver_runs"`
	AverageSolverDurationMs  float64   `json:"average_solver_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
