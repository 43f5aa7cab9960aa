package config

type Probe struct {
	Name    string `hcl:",key"`
	Disable bool   `hcl:"disable"`
}

type Listen struct {
	Port int `hcl:"port"`
}

type Audit struct {
	Probes []Probe `hcl:"probe"`
	Listen *Listen `hcl:"listen"`
}

// ListenPort returns the configured probe server port, or fallback when
// the configuration does not set one.
func (auditConfig *Audit) ListenPort(fallback int) int {
	if auditConfig.Listen != nil && auditConfig.Listen.Port != 0 {
		return auditConfig.Listen.Port
	}
	return fallback
}
