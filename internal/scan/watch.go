package scan

import "net/netip"

// MergeSeen folds a fresh scan round into the set of every host seen so far
// and returns the combined targets sorted by IPv4. A host that answered
// before keeps its learned hostname and vendor when the fresh round did not
// re-learn them.
func MergeSeen(seen map[netip.Addr]Target, fresh []Target) []Target {
	for _, t := range fresh {
		if old, ok := seen[t.IPv4]; ok {
			if t.Hostname == "" {
				t.Hostname = old.Hostname
			}
			if t.Vendor == "" {
				t.Vendor = old.Vendor
			}
		}
		seen[t.IPv4] = t
	}

	out := make([]Target, 0, len(seen))
	for _, t := range seen {
		out = append(out, t)
	}
	SortByIPv4(out)
	return out
}
