package internal

import (
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// SystemStats samples host figures for the ops dashboard. Values degrade to
// "n/a" when the platform does not expose them.
func SystemStats() map[string]any {
	stats := map[string]any{
		"Time":       time.Now().UTC().Format(time.RFC822),
		"Goroutines": runtime.NumGoroutine(),
		"CPU":        "n/a",
		"Memory":     "n/a",
	}

	if percent, err := cpu.Percent(0, false); err == nil && len(percent) > 0 {
		stats["CPU"] = fmt.Sprintf("%.1f%%", percent[0])
	}
	if v, err := mem.VirtualMemory(); err == nil {
		stats["Memory"] = fmt.Sprintf("%.1f%% of %dMB",
			v.UsedPercent, v.Total/1024/1024)
	}
	return stats
}
