// Package export converts scan results into interchange text. All three
// formats share one canonical projection of the targets, sorted ascending by
// IPv4 with absent hostname/vendor values flattened to empty strings. A
// serialization failure yields an error and no output at all; callers never
// see a half-written export.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"arpscout/internal/scan"
)

// Record is the canonical, format-agnostic projection of one discovered
// target. It is used only for export; the interactive table formats optional
// fields itself.
type Record struct {
	IPv4     string `json:"ipv4" yaml:"ipv4"`
	MAC      string `json:"mac" yaml:"mac"`
	Hostname string `json:"hostname" yaml:"hostname"`
	Vendor   string `json:"vendor" yaml:"vendor"`
}

// Document wraps the canonical records with the scan-wide counters.
type Document struct {
	PacketCount uint     `json:"packet_count" yaml:"packet_count"`
	ARPCount    uint     `json:"arp_count" yaml:"arp_count"`
	DurationMs  uint64   `json:"duration_ms" yaml:"duration_ms"`
	Results     []Record `json:"results" yaml:"results"`
}

// Canonical builds the exportable document: targets sorted ascending by
// IPv4, summary counters copied verbatim.
func Canonical(summary scan.Summary, targets []scan.Target) Document {
	sorted := make([]scan.Target, len(targets))
	copy(sorted, targets)
	scan.SortByIPv4(sorted)

	records := make([]Record, 0, len(sorted))
	for _, t := range sorted {
		records = append(records, Record{
			IPv4:     t.IPv4.String(),
			MAC:      t.MAC.String(),
			Hostname: t.Hostname,
			Vendor:   t.Vendor,
		})
	}

	return Document{
		PacketCount: summary.PacketCount,
		ARPCount:    summary.ARPCount,
		DurationMs:  summary.DurationMs,
		Results:     records,
	}
}

// JSON exports summary counters and targets as a JSON text.
func JSON(summary scan.Summary, targets []scan.Target) (string, error) {
	out, err := json.Marshal(Canonical(summary, targets))
	if err != nil {
		return "", fmt.Errorf("could not export JSON results: %w", err)
	}
	return string(out), nil
}

// YAML exports summary counters and targets as a YAML text.
func YAML(summary scan.Summary, targets []scan.Target) (string, error) {
	out, err := yaml.Marshal(Canonical(summary, targets))
	if err != nil {
		return "", fmt.Errorf("could not export YAML results: %w", err)
	}
	return string(out), nil
}

// CSV exports only the per-target records as delimited text with a header
// row. The summary counters are left out on purpose; CSV consumers get one
// row per host and nothing else.
func CSV(summary scan.Summary, targets []scan.Target) (string, error) {
	doc := Canonical(summary, targets)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"ipv4", "mac", "hostname", "vendor"}); err != nil {
		return "", fmt.Errorf("could not serialize results to CSV: %w", err)
	}
	for _, r := range doc.Results {
		if err := w.Write([]string{r.IPv4, r.MAC, r.Hostname, r.Vendor}); err != nil {
			return "", fmt.Errorf("could not serialize results to CSV: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("could not flush CSV writer buffer: %w", err)
	}
	return buf.String(), nil
}
