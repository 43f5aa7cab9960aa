package config

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// GenerateFromConfigDir merges every .hcl file below configDir into the
// audit configuration. A missing directory is not an error; the auditor
// must run with zero configuration.
func (auditConfig *Audit) GenerateFromConfigDir(configDir string) error {
	configDir = strings.TrimRight(configDir, "/")

	matches, err := findInPath(configDir)
	if err != nil {
		return err
	}

	for _, m := range matches {
		log.Infof("found config file: %s", m)

		contents, err := os.ReadFile(m)
		if err != nil {
			return errors.Wrapf(err, "failed to read configuration file %s", m)
		}

		if err := hcl.Unmarshal(contents, auditConfig); err != nil {
			return errors.Wrapf(err, "could not parse configuration file %s", m)
		}
	}

	return nil
}
