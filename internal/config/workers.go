package config

import "runtime"

// Worker resolution chain (highest priority first):
//   1. CLI flag (--workers)
//   2. Environment variable (FIBPERIOD_WORKERS)
//   3. Hardware estimation (this file)

// ApplyAdaptiveWorkers fills in the worker count when it was left at zero,
// preserving any user-specified value.
func ApplyAdaptiveWorkers(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers(cfg.LoopCount())
	}
	return cfg
}

// EstimateOptimalWorkers sizes the analysis pool to the hardware parallelism,
// never exceeding the number of moduli to analyze.
func EstimateOptimalWorkers(moduli uint64) int {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if moduli > 0 && moduli < uint64(workers) {
		return int(moduli)
	}
	return workers
}
