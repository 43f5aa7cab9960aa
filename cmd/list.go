package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"jailcheck/pkg/probe"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered probes",
	Long:  "This command lists every registered probe together with its severity category.",
	Run: func(cmd *cobra.Command, args []string) {
		probes := probe.BuildProbes(loadAuditConfig())

		names := make([]string, 0, len(probes))
		for name := range probes {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			p := probes[name]
			fmt.Println(styleListItem.Render(fmt.Sprintf("%s  %s [%s]", styleHighlight.Render(name), p.Name(), p.Category())))
		}
	},
}
