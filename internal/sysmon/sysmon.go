// Package sysmon samples system-wide CPU and memory load so the sweep can
// log how busy the host was before and after the worker pool ran.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/agbru/fibperiod/internal/logging"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent  float64 // 0.0 .. 100.0
	MemPercent  float64 // 0.0 .. 100.0
	LogicalCPUs int
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCPUs = n
	}
	return s
}

// LogSample takes a sample and logs it at debug level under phase
// (e.g. "sweep.start"). The sample is returned for callers that keep it.
func LogSample(logger logging.Logger, phase string) Stats {
	s := Sample()
	logger.Debug("system load",
		logging.String("phase", phase),
		logging.Float64("cpu_percent", s.CPUPercent),
		logging.Float64("mem_percent", s.MemPercent),
		logging.Int("logical_cpus", s.LogicalCPUs),
	)
	return s
}
