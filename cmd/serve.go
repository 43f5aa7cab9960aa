package cmd

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jailcheck/pkg/probe"
)

var probeListenPort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&probeListenPort, "probe-listen-port", "p", 9102, "set the port to listen for probe requests")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose probe results over HTTP",
	Long:  "This sub-command starts an HTTP server exposing the probe results as JSON on /status and as a periodic websocket feed on /stream",
	Run: func(cmd *cobra.Command, args []string) {
		auditConfig := loadAuditConfig()
		handler := probe.NewHandler(probe.BuildProbes(auditConfig))

		port := probeListenPort
		if !cmd.Flags().Changed("probe-listen-port") {
			port = auditConfig.ListenPort(probeListenPort)
		}

		signals := make(chan os.Signal, 1)
		signal.Notify(signals,
			syscall.SIGTERM,
			syscall.SIGINT,
		)

		log.Infof("probe server listens on port %d", port)

		if err := probe.RunProbeServer(handler, signals, port); err != nil {
			log.Fatalf("probe server stopped with error: %s", err)
		}

		log.Info("probe server stopped without error")
	},
}
