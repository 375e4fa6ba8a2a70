package tui

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/widgets/calendar"
)

func (r *Renderer) serialize(fields []model.Field, values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(r.prettyPrint(fields, values)), nil
	default:
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return out, nil
	}
}

// flattenForm encodes values the way a browser would post them. Files post
// their names.
func flattenForm(values map[string]any) string {
	out := url.Values{}
	for name, value := range values {
		switch v := value.(type) {
		case []model.File:
			for _, f := range v {
				out.Add(name, f.Name)
			}
		default:
			out.Set(name, scalar(v))
		}
	}
	return out.Encode()
}

// prettyPrint lists answers in field order, then any extra keys sorted.
func (r *Renderer) prettyPrint(fields []model.Field, values map[string]any) string {
	var b strings.Builder
	seen := make(map[string]bool, len(values))
	write := func(title string, value any) {
		b.WriteString(r.theme.Label.Render(title + ":"))
		b.WriteString(" ")
		b.WriteString(scalar(value))
		b.WriteString("\n")
	}
	for _, field := range fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		seen[field.Name] = true
		write(label(field), value)
	}
	var rest []string
	for name := range values {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		write(name, values[name])
	}
	return b.String()
}

func scalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.UTC().Format(calendar.ISOLayout)
	case model.PhoneData:
		return v.FullNumber
	case []model.File:
		names := make([]string, len(v))
		for i, f := range v {
			names[i] = f.Name
		}
		return strings.Join(names, ", ")
	default:
		return fmt.Sprint(v)
	}
}
