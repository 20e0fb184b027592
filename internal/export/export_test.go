package export

import (
	"encoding/json"
	"net"
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"arpscout/internal/scan"
)

func target(t *testing.T, ip, mac, hostname, vendor string) scan.Target {
	t.Helper()
	hw, err := net.ParseMAC(mac)
	require.NoError(t, err)
	return scan.Target{
		IPv4:     netip.MustParseAddr(ip),
		MAC:      hw,
		Hostname: hostname,
		Vendor:   vendor,
	}
}

func unsortedTargets(t *testing.T) []scan.Target {
	t.Helper()
	return []scan.Target{
		target(t, "192.168.1.20", "aa:bb:cc:dd:ee:02", "", "Netgear"),
		target(t, "10.0.0.1", "aa:bb:cc:dd:ee:03", "gateway.lan", ""),
		target(t, "192.168.1.3", "aa:bb:cc:dd:ee:01", "printer.lan", "Apple"),
	}
}

var testSummary = scan.Summary{PacketCount: 8, ARPCount: 5, DurationMs: 2353}

func TestCanonicalOrderingAndFlattening(t *testing.T) {
	doc := Canonical(testSummary, unsortedTargets(t))

	require.Len(t, doc.Results, 3)
	assert.Equal(t, []Record{
		{IPv4: "10.0.0.1", MAC: "aa:bb:cc:dd:ee:03", Hostname: "gateway.lan", Vendor: ""},
		{IPv4: "192.168.1.3", MAC: "aa:bb:cc:dd:ee:01", Hostname: "printer.lan", Vendor: "Apple"},
		{IPv4: "192.168.1.20", MAC: "aa:bb:cc:dd:ee:02", Hostname: "", Vendor: "Netgear"},
	}, doc.Results)

	assert.Equal(t, uint(8), doc.PacketCount)
	assert.Equal(t, uint(5), doc.ARPCount)
	assert.Equal(t, uint64(2353), doc.DurationMs)
}

func TestJSONRoundTrip(t *testing.T) {
	out, err := JSON(testSummary, unsortedTargets(t))
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, Canonical(testSummary, unsortedTargets(t)), decoded)

	// Summary keys are part of the wire contract.
	assert.Contains(t, out, `"packet_count":8`)
	assert.Contains(t, out, `"arp_count":5`)
	assert.Contains(t, out, `"duration_ms":2353`)
}

func TestYAMLRoundTrip(t *testing.T) {
	out, err := YAML(testSummary, unsortedTargets(t))
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, Canonical(testSummary, unsortedTargets(t)), decoded)

	assert.Contains(t, out, "packet_count: 8")
	assert.Contains(t, out, "arp_count: 5")
	assert.Contains(t, out, "duration_ms: 2353")
}

func TestCSVTargetsOnly(t *testing.T) {
	out, err := CSV(testSummary, unsortedTargets(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "ipv4,mac,hostname,vendor", lines[0])
	assert.Equal(t, "10.0.0.1,aa:bb:cc:dd:ee:03,gateway.lan,", lines[1])
	assert.Equal(t, "192.168.1.3,aa:bb:cc:dd:ee:01,printer.lan,Apple", lines[2])
	assert.Equal(t, "192.168.1.20,aa:bb:cc:dd:ee:02,,Netgear", lines[3])

	// The intentional asymmetry: CSV carries no summary counters.
	assert.NotContains(t, out, "packet_count")
	assert.NotContains(t, out, "2353")
}

func TestFormatsAgreeOnOrdering(t *testing.T) {
	jsonOut, err := JSON(testSummary, unsortedTargets(t))
	require.NoError(t, err)
	yamlOut, err := YAML(testSummary, unsortedTargets(t))
	require.NoError(t, err)
	csvOut, err := CSV(testSummary, unsortedTargets(t))
	require.NoError(t, err)

	var fromJSON, fromYAML Document
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &fromJSON))
	require.NoError(t, yaml.Unmarshal([]byte(yamlOut), &fromYAML))
	assert.Equal(t, fromJSON.Results, fromYAML.Results)

	csvLines := strings.Split(strings.TrimRight(csvOut, "\n"), "\n")[1:]
	require.Len(t, csvLines, len(fromJSON.Results))
	for i, record := range fromJSON.Results {
		assert.True(t, strings.HasPrefix(csvLines[i], record.IPv4+","),
			"CSV row %d should start with %s", i, record.IPv4)
	}
}

func TestExportEmptyResults(t *testing.T) {
	jsonOut, err := JSON(scan.Summary{}, nil)
	require.NoError(t, err)
	assert.Contains(t, jsonOut, `"results":[]`)

	csvOut, err := CSV(scan.Summary{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ipv4,mac,hostname,vendor\n", csvOut)
}

func TestExportDoesNotMutateInput(t *testing.T) {
	targets := unsortedTargets(t)
	_, err := JSON(testSummary, targets)
	require.NoError(t, err)

	assert.Equal(t, netip.MustParseAddr("192.168.1.20"), targets[0].IPv4)
}
