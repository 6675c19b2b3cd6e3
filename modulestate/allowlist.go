package modulestate

import "strings"

// DefaultAllowlist is the fixed module subset surfaced to guild
// deployments unless overridden through MODULE_ALLOWLIST.
var DefaultAllowlist = []string{"AutoMod", "Logging", "Moderation", "Welcome"}

// ParseAllowlist parses a comma separated module name list. A blank
// value keeps the default subset; "*" lifts the restriction entirely.
func ParseAllowlist(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultAllowlist
	}
	if trimmed == "*" {
		return nil
	}

	names := []string{}
	for _, part := range strings.Split(trimmed, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return DefaultAllowlist
	}
	return names
}
