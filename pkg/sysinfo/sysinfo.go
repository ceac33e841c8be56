// Package sysinfo captures a snapshot of the capabilities of the host the
// process is running on. Pool sizing decisions (initial sizes, growth
// headroom) are typically tuned against this snapshot.
package sysinfo

import (
	"runtime"

	"github.com/goccy/go-json"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/martinwells/objects/pkg/objerrors"
)

// Capabilities describes the host hardware and runtime environment.
type Capabilities struct {
	Hostname        string  `json:"hostname"`
	OS              string  `json:"os"`
	Platform        string  `json:"platform"`
	PlatformVersion string  `json:"platform_version"`
	KernelArch      string  `json:"kernel_arch"`
	CPUModel        string  `json:"cpu_model"`
	LogicalCores    int     `json:"logical_cores"`
	PhysicalCores   int     `json:"physical_cores"`
	TotalMemory     uint64  `json:"total_memory_bytes"`
	AvailableMemory uint64  `json:"available_memory_bytes"`
	UsedMemoryPct   float64 `json:"used_memory_percent"`
	GoVersion       string  `json:"go_version"`
	GoMaxProcs      int     `json:"gomaxprocs"`
}

// Collect gathers a capability snapshot from the host. Partial failures in
// individual probes leave the corresponding fields zeroed rather than
// failing the whole snapshot; only a total memory probe failure is fatal.
func Collect() (*Capabilities, error) {
	caps := &Capabilities{
		GoVersion:  runtime.Version(),
		GoMaxProcs: runtime.GOMAXPROCS(0),
	}

	if info, err := host.Info(); err == nil {
		caps.Hostname = info.Hostname
		caps.OS = info.OS
		caps.Platform = info.Platform
		caps.PlatformVersion = info.PlatformVersion
		caps.KernelArch = info.KernelArch
	}

	caps.LogicalCores, _ = cpu.Counts(true)
	caps.PhysicalCores, _ = cpu.Counts(false)
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		caps.CPUModel = infos[0].ModelName
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, objerrors.Wrap(err, objerrors.ErrorTypeInternal, "failed to probe system memory")
	}
	caps.TotalMemory = vm.Total
	caps.AvailableMemory = vm.Available
	caps.UsedMemoryPct = vm.UsedPercent

	return caps, nil
}

// JSON renders the snapshot as indented JSON.
func (c *Capabilities) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, objerrors.Wrap(err, objerrors.ErrorTypeInternal, "failed to marshal capabilities")
	}
	return data, nil
}
