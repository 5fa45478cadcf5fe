// Package alias remaps import specifiers during bundling: an entry like
// `somepackage=newpackage` makes every import of `somepackage` resolve
// as if it were `newpackage`.
package alias

import (
	"fmt"
	"strings"

	"micromachine.dev/bundle-utils/lib/utils"
)

// Entry maps one import specifier onto its replacement.
type Entry struct {
	Find        string
	Replacement string
}

// Config is an ordered list of entries with unique Find keys.
type Config []Entry

// Validate parses raw `find=replacement` strings into a Config. The
// first `=` is the split point, so the replacement may itself contain
// `=`; both sides must be non-empty. A later entry repeating an
// already-accepted find is kept out of the config but still reported.
// The partial config is returned even on error so callers can observe
// the first-match-wins set.
func Validate(raw []string) (Config, error) {
	var bad []string
	var dups []string

	config := make(Config, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, entry := range raw {
		find, replacement, ok := splitEntry(entry)
		if !ok {
			bad = append(bad, entry)
			continue
		}

		if _, exists := seen[find]; exists {
			dups = append(dups, entry)
			continue
		}

		seen[find] = struct{}{}
		config = append(config, Entry{Find: find, Replacement: replacement})
	}

	if len(bad) > 0 || len(dups) > 0 {
		var parts []string
		if len(bad) > 0 {
			parts = append(parts, fmt.Sprintf("invalid alias entries %q: each entry must look like find=replacement", bad))
		}
		if len(dups) > 0 {
			parts = append(parts, fmt.Sprintf("duplicate alias entries %q: each find may only be aliased once", dups))
		}
		return config, utils.Configf("%s", strings.Join(parts, "; "))
	}

	return config, nil
}

func splitEntry(entry string) (find, replacement string, ok bool) {
	find, replacement, found := strings.Cut(entry, "=")
	if !found || find == "" || replacement == "" {
		return "", "", false
	}
	return find, replacement, true
}
