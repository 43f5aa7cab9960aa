package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/pretty"

	"jailcheck/pkg/probe"
)

type probeReport struct {
	Probe     string         `json:"probe"`
	Name      string         `json:"name"`
	Category  probe.Category `json:"category"`
	OK        bool           `json:"ok"`
	Finding   string         `json:"finding,omitempty"`
	FaultCode string         `json:"faultCode,omitempty"`
	Message   string         `json:"message,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func printReport(report []probeReport) {
	for _, entry := range report {
		header := fmt.Sprintf("%s [%s]", entry.Probe, entry.Category)
		if entry.FaultCode != "" {
			header = fmt.Sprintf("%s (%s)", header, entry.FaultCode)
		}

		switch {
		case entry.Error != "":
			fmt.Println(styleFailed.Render("✗ ERROR: " + header))
			fmt.Println(styleDetail.Render(entry.Error))
		case entry.OK:
			fmt.Println(stylePassed.Render("✔︎ PASS:  " + header))
			fmt.Println(styleDetail.Render(entry.Message))
		default:
			fmt.Println(styleFailed.Render("✗ FAIL:  " + header))
			fmt.Println(styleDetail.Render(entry.Message))
		}
	}
}

func printJSONReport(report []probeReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return err
	}

	fmt.Println(string(pretty.Color(buf.Bytes(), nil)))
	return nil
}
