package cmd

import (
	"os"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jailcheck/pkg/probe"
)

var (
	failOnRaw  string
	jsonOutput bool
)

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().StringVar(&failOnRaw, "fail-on", "low", "lowest severity category whose findings cause a non-zero exit code")
	auditCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "print the report as JSON")
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run all isolation probes and print a report",
	Long:  "This sub-command runs every configured probe against the live system, prints a report and exits non-zero when a probe at or above the --fail-on category collected evidence.",
	Run: func(cmd *cobra.Command, args []string) {
		failOn, err := probe.ParseCategory(failOnRaw)
		if err != nil {
			log.Fatalf("invalid --fail-on value: %s", err)
		}

		probes := probe.BuildProbes(loadAuditConfig())

		names := make([]string, 0, len(probes))
		for name := range probes {
			names = append(names, name)
		}
		sort.Strings(names)

		report := make([]probeReport, 0, len(names))
		gateTripped := false

		for _, name := range names {
			p := probes[name]
			log.WithFields(log.Fields{"kind": "probe", "name": name}).Debug("executing probe")

			result, err := p.Exec()
			if err != nil {
				log.WithFields(log.Fields{"kind": "probe", "name": name}).WithError(err).Error("probe could not run")
				report = append(report, probeReport{
					Probe:    name,
					Name:     p.Name(),
					Category: p.Category(),
					Error:    err.Error(),
				})
				gateTripped = true
				continue
			}

			report = append(report, probeReport{
				Probe:     name,
				Name:      p.Name(),
				Category:  p.Category(),
				OK:        result.Success(),
				Finding:   result.AsString(),
				FaultCode: result.FaultCode(),
				Message:   result.Explain(),
			})

			if !result.Success() && p.Category() >= failOn {
				gateTripped = true
			}
		}

		if jsonOutput {
			if err := printJSONReport(report); err != nil {
				log.Fatalf("failed to print report: %s", err)
			}
		} else {
			printReport(report)
		}

		if gateTripped {
			os.Exit(1)
		}
	},
}
