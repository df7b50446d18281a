package recurring

import "strings"

// Contract types accepted by Adyen when storing details.
const (
	ContractOneClick  = "ONECLICK"
	ContractRecurring = "RECURRING"
)

// DefaultRecurringType is used when no store setting is configured.
const DefaultRecurringType = ContractOneClick

// ParseContractTypes splits a recurring type setting on "," into a
// de-duplicated list. Stored tokens keep the list form even though only one
// value is meaningful today, so older tokens stay readable.
func ParseContractTypes(setting string) []string {
	parts := strings.Split(setting, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func contractTypesFrom(v any) []string {
	switch t := v.(type) {
	case []string:
		return ParseContractTypes(strings.Join(t, ","))
	case []any:
		vals := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				vals = append(vals, s)
			}
		}
		return ParseContractTypes(strings.Join(vals, ","))
	case string:
		return ParseContractTypes(t)
	default:
		return nil
	}
}
