package probe

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func newDeviceProbeWithFS(fsys fs.FS) *deviceAccessProbe {
	return &deviceAccessProbe{devDir: "/dev", devfs: fsys}
}

func charDevice() *fstest.MapFile {
	return &fstest.MapFile{Mode: fs.ModeDevice | fs.ModeCharDevice}
}

func blockDevice() *fstest.MapFile {
	return &fstest.MapFile{Mode: fs.ModeDevice}
}

type unreadableFS struct{}

func (unreadableFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrPermission
}

func TestDeviceProbeReportsDangerousMemoryDevices(t *testing.T) {
	p := newDeviceProbeWithFS(fstest.MapFS{
		"mem":  charDevice(),
		"port": charDevice(),
	})

	result, err := p.Exec()
	require.NoError(t, err)

	deviceResult := result.(*DeviceAccessResult)
	require.Equal(t, []string{"/dev/mem", "/dev/port"}, deviceResult.DangerousDevices)
	require.False(t, result.Success())
	require.Equal(t, "yes", result.AsString())
}

func TestDeviceProbeReportsStorageBlockDevices(t *testing.T) {
	p := newDeviceProbeWithFS(fstest.MapFS{
		"sda":     blockDevice(),
		"sda1":    blockDevice(),
		"nvme0n1": blockDevice(),
		"loop0":   blockDevice(),
	})

	result, err := p.Exec()
	require.NoError(t, err)

	deviceResult := result.(*DeviceAccessResult)
	require.Equal(t, []string{"/dev/nvme0n1", "/dev/sda", "/dev/sda1"}, deviceResult.BlockDevices)
	require.False(t, result.Success())
}

func TestDeviceProbeToleratesMinimalCharacterDevices(t *testing.T) {
	p := newDeviceProbeWithFS(fstest.MapFS{
		"tty1":    charDevice(),
		"tty2":    charDevice(),
		"console": charDevice(),
	})

	result, err := p.Exec()
	require.NoError(t, err)

	deviceResult := result.(*DeviceAccessResult)
	require.Len(t, deviceResult.CharacterDevices, 3)
	require.True(t, result.Success())
	require.Equal(t, "no", result.AsString())
}

func TestDeviceProbeFailsBeyondCharacterDeviceTolerance(t *testing.T) {
	p := newDeviceProbeWithFS(fstest.MapFS{
		"tty1": charDevice(),
		"tty2": charDevice(),
		"tty3": charDevice(),
		"tty4": charDevice(),
	})

	result, err := p.Exec()
	require.NoError(t, err)

	deviceResult := result.(*DeviceAccessResult)
	require.Len(t, deviceResult.CharacterDevices, 4)
	require.False(t, result.Success())
	require.Equal(t, "yes", result.AsString())
}

func TestDeviceProbeCollectsGPUDevices(t *testing.T) {
	p := newDeviceProbeWithFS(fstest.MapFS{
		"nvidia0":        charDevice(),
		"dri/card0":      charDevice(),
		"dri/renderD128": charDevice(),
	})

	result, err := p.Exec()
	require.NoError(t, err)

	deviceResult := result.(*DeviceAccessResult)
	require.Equal(t, []string{"/dev/dri/card0", "/dev/dri/renderD128", "/dev/nvidia0"}, deviceResult.GPUDevices)
	require.False(t, result.Success())
}

func TestDeviceProbeRecordsRNGDevicesWithoutFailing(t *testing.T) {
	p := newDeviceProbeWithFS(fstest.MapFS{
		"random":  charDevice(),
		"urandom": charDevice(),
		"hwrng":   charDevice(),
	})

	result, err := p.Exec()
	require.NoError(t, err)

	deviceResult := result.(*DeviceAccessResult)
	require.Equal(t, []string{"/dev/hwrng", "/dev/random", "/dev/urandom"}, deviceResult.HardwareRNGs)
	require.True(t, result.Success())
	require.Equal(t, "no", result.AsString())
	require.Contains(t, result.Explain(), "RNG")
}

func TestDeviceProbeWithEmptyDeviceDirectory(t *testing.T) {
	p := newDeviceProbeWithFS(fstest.MapFS{})

	result, err := p.Exec()
	require.NoError(t, err)
	require.True(t, result.Success())
	require.Equal(t, "no", result.AsString())
	require.Equal(t, "container has minimal device access - good isolation", result.Explain())
}

func TestDeviceProbeWithUnreadableDeviceDirectory(t *testing.T) {
	p := newDeviceProbeWithFS(unreadableFS{})

	result, err := p.Exec()
	require.NoError(t, err)

	deviceResult := result.(*DeviceAccessResult)
	require.Empty(t, deviceResult.DangerousDevices)
	require.Empty(t, deviceResult.BlockDevices)
	require.Empty(t, deviceResult.HardwareRNGs)
	require.Empty(t, deviceResult.GPUDevices)
	require.Empty(t, deviceResult.CharacterDevices)
	require.True(t, result.Success())
}

func TestDeviceProbeExplainMentionsOnlyPopulatedClasses(t *testing.T) {
	p := newDeviceProbeWithFS(fstest.MapFS{
		"sda": blockDevice(),
	})

	result, err := p.Exec()
	require.NoError(t, err)

	explanation := result.Explain()
	require.Contains(t, explanation, "block")
	require.NotContains(t, explanation, "memory")
	require.NotContains(t, explanation, "RNG")
	require.NotContains(t, explanation, "GPU")
	require.NotContains(t, explanation, "character")
}

func TestDeviceProbeFaultCodeIsStable(t *testing.T) {
	empty, err := newDeviceProbeWithFS(fstest.MapFS{}).Exec()
	require.NoError(t, err)

	loaded, err := newDeviceProbeWithFS(fstest.MapFS{"mem": charDevice()}).Exec()
	require.NoError(t, err)

	require.Equal(t, "AII3100", empty.FaultCode())
	require.Equal(t, "AII3100", loaded.FaultCode())
}
