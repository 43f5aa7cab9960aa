package probe

import (
	"fmt"
	"strings"
)

// Probe is a single read-only isolation check. Exec inspects live OS
// state and produces a Result; the error return is reserved for probes
// that cannot run at all. Absence of evidence is a successful Result,
// not an error.
type Probe interface {
	Name() string
	Category() Category
	Exec() (Result, error)
}

// Result is the outcome of one probe execution. It is immutable once
// returned; all evidence it carries is deduplicated and sorted.
type Result interface {
	// Success reports whether the probe found no disqualifying evidence.
	Success() bool

	// Explain summarizes the collected evidence. Only non-empty evidence
	// classes appear, joined with "; ".
	Explain() string

	// AsString answers "is this a problem?" - exactly "no" when Success
	// is true, "yes" otherwise.
	AsString() string

	// FaultCode is a fixed identifier per result type, stable across
	// versions so downstream consumers can pattern-match on it.
	FaultCode() string
}

// Category is the severity tier of a probe. It is reported alongside
// findings and used by callers for weighting and exit-code decisions;
// probes themselves do not interpret it.
type Category int

const (
	CategoryLow Category = iota
	CategoryMedium
	CategoryHigh
	CategoryCritical
)

func (c Category) String() string {
	switch c {
	case CategoryLow:
		return "low"
	case CategoryMedium:
		return "medium"
	case CategoryHigh:
		return "high"
	case CategoryCritical:
		return "critical"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}

func ParseCategory(raw string) (Category, error) {
	switch strings.ToLower(raw) {
	case "low":
		return CategoryLow, nil
	case "medium":
		return CategoryMedium, nil
	case "high":
		return CategoryHigh, nil
	case "critical":
		return CategoryCritical, nil
	}
	return CategoryLow, fmt.Errorf("unknown severity category %q", raw)
}
