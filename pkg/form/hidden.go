package form

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenField is a hidden input emitted with the form, such as a CSRF token
// or a record version.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a hidden field for an arbitrary value.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// CSRFToken carries a CSRF token under the name the backend expects, for
// example "_csrf".
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField carries a record version for optimistic locking.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// SortedHiddenFields drops unnamed entries, lets later entries win on name
// collisions and sorts by name for stable output.
func SortedHiddenFields(fields []HiddenField) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	byName := make(map[string]string, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		byName[name] = field.Value
	}
	if len(byName) == 0 {
		return nil
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]HiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenField{Name: name, Value: byName[name]})
	}
	return out
}
