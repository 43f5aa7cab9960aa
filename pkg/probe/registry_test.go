package probe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"jailcheck/internal/config"
)

func TestBuildProbesDefaultsToAllProbes(t *testing.T) {
	probes := BuildProbes(&config.Audit{})

	require.Len(t, probes, 2)
	require.Contains(t, probes, "device-access")
	require.Contains(t, probes, "host-mounts")
}

func TestBuildProbesHonorsDisable(t *testing.T) {
	probes := BuildProbes(&config.Audit{
		Probes: []config.Probe{
			{Name: "device-access", Disable: true},
		},
	})

	require.Len(t, probes, 1)
	require.NotContains(t, probes, "device-access")
	require.Contains(t, probes, "host-mounts")
}

func TestBuildProbesIgnoresUnknownProbeNames(t *testing.T) {
	probes := BuildProbes(&config.Audit{
		Probes: []config.Probe{
			{Name: "capabilities", Disable: true},
		},
	})

	require.Len(t, probes, 2)
}
