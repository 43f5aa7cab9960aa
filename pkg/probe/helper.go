package probe

import (
	"os"
	"sort"
	"strings"
)

// dedupeAndSort finalizes an evidence collection: sorted and free of
// duplicates, so repeated runs on unchanged system state produce
// identical results.
func dedupeAndSort(in []string) []string {
	if len(in) < 2 {
		return in
	}

	sort.Strings(in)

	out := in[:1]
	for _, s := range in[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func isAnyOf(s string, values []string) bool {
	for _, value := range values {
		if s == value {
			return true
		}
	}
	return false
}

func firstN(in []string, n int) []string {
	if len(in) <= n {
		return in
	}
	return in[:n]
}

func yesNo(success bool) string {
	if success {
		return "no"
	}
	return "yes"
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
