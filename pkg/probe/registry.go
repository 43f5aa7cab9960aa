package probe

import (
	log "github.com/sirupsen/logrus"

	"jailcheck/internal/config"
)

// BuildProbes assembles the probe set from configuration. Every known
// probe is enabled unless the configuration disables it by name.
func BuildProbes(cfg *config.Audit) map[string]Probe {
	probes := map[string]Probe{
		"device-access": NewDeviceAccessProbe(),
		"host-mounts":   NewHostMountsProbe(),
	}

	for i := range cfg.Probes {
		if !cfg.Probes[i].Disable {
			continue
		}

		if _, ok := probes[cfg.Probes[i].Name]; !ok {
			log.WithFields(log.Fields{"kind": "probe", "name": cfg.Probes[i].Name}).Warn("cannot disable unknown probe")
			continue
		}

		delete(probes, cfg.Probes[i].Name)
	}

	return probes
}
