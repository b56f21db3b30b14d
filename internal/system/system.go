// Package system samples host resource usage for the status endpoint.
package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

type Usage struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	Goroutines    int     `json:"goroutines"`
}

// Sample never blocks on CPU measurement; a failed probe leaves its field zero.
func Sample() Usage {
	u := Usage{Goroutines: runtime.NumGoroutine()}

	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		u.CPUPercent = pct[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		u.MemoryPercent = vm.UsedPercent
	}
	return u
}
