package config

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

func findInPath(configDir string) ([]string, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		log.Debugf("config directory %s does not exist, using built-in defaults", configDir)
		return nil, nil
	}

	var matches []string

	err := filepath.Walk(configDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if strings.HasSuffix(info.Name(), ".hcl") {
			matches = append(matches, path)
		}
		return nil
	})

	return matches, err
}
