package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jailcheck/internal/config"
)

var configDir string
var verbose bool

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "c", "/etc/jailcheck.d", "set directory to where your .hcl-configs are located")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:     "jailcheck",
	Short:   "Jailcheck - container isolation audit",
	Long:    "Jailcheck inspects the device nodes and filesystem mounts visible to the current process and reports exposures that would let a container reach host resources",
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Warn("Running 'jailcheck' without any arguments - defaulting to 'audit'. This behaviour may change in future releases!")
		auditCmd.Run(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func loadAuditConfig() *config.Audit {
	auditConfig := &config.Audit{}
	if err := auditConfig.GenerateFromConfigDir(configDir); err != nil {
		log.Fatalf("failed to load configuration from %q: %s", configDir, err)
	}
	return auditConfig
}
