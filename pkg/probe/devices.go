package probe

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

const deviceAccessFaultCode = "AII3100"

// charDeviceTolerance is the number of generic character devices a
// container may expose before the probe fails. A minimal console/tty
// setup is expected in normal containers; broad exposure is not.
const charDeviceTolerance = 3

// Classification tables for device nodes. The matching logic stays
// generic; extend these lists to cover additional hardware.
var (
	// Nodes granting raw physical memory, kernel memory or I/O port
	// access. Their mere existence means the device namespace was not
	// stripped of them.
	dangerousMemoryDevices = []string{"mem", "kmem", "port"}

	// Storage driver name prefixes for raw block I/O.
	blockDevicePrefixes = []string{"sd", "nvme", "vd", "hd", "xvd"}

	rngDevicePrefixes = []string{"hwrng"}
	rngDeviceNames    = []string{"random", "urandom"}

	gpuDevicePrefixes = []string{"nvidia"}

	// Terminals, pseudo-terminal slaves, console, framebuffers and
	// input nodes.
	charDevicePrefixes = []string{"tty", "pts/", "fb", "input/"}
	charDeviceNames    = []string{"console"}
)

// gpuSubdir is the graphics driver directory below /dev holding DRM
// card and render nodes.
const gpuSubdir = "dri"

type deviceAccessProbe struct {
	devDir string
	devfs  fs.FS
}

// NewDeviceAccessProbe returns a probe inspecting the process's view of
// /dev for nodes that enable host memory access, raw block I/O or
// GPU/driver access.
func NewDeviceAccessProbe() *deviceAccessProbe {
	return &deviceAccessProbe{
		devDir: "/dev",
		devfs:  os.DirFS("/dev"),
	}
}

func (p *deviceAccessProbe) Name() string {
	return "device node access"
}

func (p *deviceAccessProbe) Category() Category {
	return CategoryHigh
}

func (p *deviceAccessProbe) Exec() (Result, error) {
	result := &DeviceAccessResult{}

	for _, name := range dangerousMemoryDevices {
		// Existence alone is the signal; even a permission-restricted
		// node means the namespace still contains it.
		if _, err := fs.Stat(p.devfs, name); err == nil {
			result.DangerousDevices = append(result.DangerousDevices, path.Join(p.devDir, name))
		}
	}

	entries, err := fs.ReadDir(p.devfs, ".")
	if err != nil {
		// An unreadable device directory reads as empty evidence.
		entries = nil
	}

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}

		name := entry.Name()
		devicePath := path.Join(p.devDir, name)
		mode := info.Mode()

		switch {
		case mode&fs.ModeDevice != 0 && mode&fs.ModeCharDevice == 0:
			if hasAnyPrefix(name, blockDevicePrefixes) {
				result.BlockDevices = append(result.BlockDevices, devicePath)
			}

		case mode&fs.ModeCharDevice != 0:
			// Buckets are intentionally non-exclusive.
			if hasAnyPrefix(name, rngDevicePrefixes) || isAnyOf(name, rngDeviceNames) {
				result.HardwareRNGs = append(result.HardwareRNGs, devicePath)
			}
			if hasAnyPrefix(name, gpuDevicePrefixes) {
				result.GPUDevices = append(result.GPUDevices, devicePath)
			}
			if hasAnyPrefix(name, charDevicePrefixes) || isAnyOf(name, charDeviceNames) {
				result.CharacterDevices = append(result.CharacterDevices, devicePath)
			}
		}
	}

	// DRM card and render nodes live below /dev/dri and are not seen
	// as immediate entries above.
	if gpus, err := fs.ReadDir(p.devfs, gpuSubdir); err == nil {
		for _, entry := range gpus {
			result.GPUDevices = append(result.GPUDevices, path.Join(p.devDir, gpuSubdir, entry.Name()))
		}
	}

	result.DangerousDevices = dedupeAndSort(result.DangerousDevices)
	result.BlockDevices = dedupeAndSort(result.BlockDevices)
	result.HardwareRNGs = dedupeAndSort(result.HardwareRNGs)
	result.GPUDevices = dedupeAndSort(result.GPUDevices)
	result.CharacterDevices = dedupeAndSort(result.CharacterDevices)

	return result, nil
}

// DeviceAccessResult holds the device nodes collected by the device
// access probe, one collection per risk class.
type DeviceAccessResult struct {
	DangerousDevices []string
	BlockDevices     []string
	HardwareRNGs     []string
	GPUDevices       []string
	CharacterDevices []string
}

func (r *DeviceAccessResult) Success() bool {
	return len(r.DangerousDevices) == 0 &&
		len(r.BlockDevices) == 0 &&
		len(r.GPUDevices) == 0 &&
		len(r.CharacterDevices) <= charDeviceTolerance
}

func (r *DeviceAccessResult) Explain() string {
	var issues []string

	if len(r.DangerousDevices) > 0 {
		issues = append(issues, fmt.Sprintf("access to dangerous memory devices: %s",
			strings.Join(r.DangerousDevices, ", ")))
	}

	if len(r.BlockDevices) > 0 {
		issues = append(issues, fmt.Sprintf("access to %d block devices: %s",
			len(r.BlockDevices),
			strings.Join(firstN(r.BlockDevices, 3), ", ")))
	}

	if len(r.HardwareRNGs) > 0 {
		issues = append(issues, fmt.Sprintf("hardware RNG devices visible: %s",
			strings.Join(r.HardwareRNGs, ", ")))
	}

	if len(r.GPUDevices) > 0 {
		issues = append(issues, fmt.Sprintf("access to GPU/graphics devices: %s",
			strings.Join(r.GPUDevices, ", ")))
	}

	if len(r.CharacterDevices) > 0 {
		issues = append(issues, fmt.Sprintf("access to %d character devices including: %s",
			len(r.CharacterDevices),
			strings.Join(firstN(r.CharacterDevices, 3), ", ")))
	}

	if len(issues) == 0 {
		return "container has minimal device access - good isolation"
	}

	return fmt.Sprintf("container exposes device nodes: %s", strings.Join(issues, "; "))
}

func (r *DeviceAccessResult) AsString() string {
	return yesNo(r.Success())
}

func (r *DeviceAccessResult) FaultCode() string {
	return deviceAccessFaultCode
}
