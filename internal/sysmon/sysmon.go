// Package sysmon samples host resource usage for the dashboard header.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Snapshot is a point-in-time view of host load while sessions run.
type Snapshot struct {
	CPUPercent float64 // 0.0 .. 100.0, delta since previous call
	MemPercent float64 // 0.0 .. 100.0
	Goroutines int
}

// Sample collects one host snapshot. CPU uses interval=0, so the first call
// of a run reports 0. Probe errors leave the affected field at zero; a smoke
// run never fails because of the gauge.
func Sample() Snapshot {
	var s Snapshot
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
	}
	s.Goroutines = runtime.NumGoroutine()
	return s
}
