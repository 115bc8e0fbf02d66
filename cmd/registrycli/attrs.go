package main

import (
	"fmt"
	"strings"

	"github.com/synnergy-registry/registry/core"
)

// parseKVPairs turns "key=value" strings (as repeated on the command line)
// into core.KV pairs.
func parseKVPairs(raw []string) ([]core.KV, error) {
	out := make([]core.KV, 0, len(raw))
	for _, item := range raw {
		key, value, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("malformed key=value pair: %q", item)
		}
		out = append(out, core.KV{Key: key, Value: value})
	}
	return out, nil
}

// endorsementFromKeys builds a flat endorsement list from bare keys (e.g.
// "blacklist", "whitelist") that carry no nested value.
func endorsementFromKeys(keys []string) []core.Attribute {
	out := make([]core.Attribute, 0, len(keys))
	for _, k := range keys {
		out = append(out, core.Attribute{Key: k})
	}
	return out
}
