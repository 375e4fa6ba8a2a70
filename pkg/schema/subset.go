package schema

import (
	"strings"
)

// Subset selects part of a document. A field is kept when its name, one of
// its tags, or its section id matches. An empty subset keeps everything.
type Subset struct {
	Fields   []string
	Tags     []string
	Sections []string
}

// ParseSubset reads comma separated lists, as passed in query strings or
// command flags.
func ParseSubset(fields, tags, sections string) Subset {
	return Subset{
		Fields:   parseTokenList(fields),
		Tags:     parseTokenList(tags),
		Sections: parseTokenList(sections),
	}
}

// Empty reports whether the subset filters nothing.
func (s Subset) Empty() bool {
	return newSubsetMatcher(s).empty()
}

// ApplySubset removes the fields that do not match subset and drops the
// sections left without fields, so renderers never emit empty sections.
func ApplySubset(doc *Document, subset Subset) {
	if doc == nil {
		return
	}
	matcher := newSubsetMatcher(subset)
	if matcher.empty() {
		return
	}

	sections := make([]Section, 0, len(doc.Sections))
	for _, section := range doc.Sections {
		kept := make([]Field, 0, len(section.Fields))
		for _, field := range section.Fields {
			if matcher.matches(section, field) {
				kept = append(kept, field)
			}
		}
		if len(kept) == 0 {
			continue
		}
		section.Fields = kept
		sections = append(sections, section)
	}
	doc.Sections = sections
}

type subsetMatcher struct {
	fields   map[string]struct{}
	tags     map[string]struct{}
	sections map[string]struct{}
}

func newSubsetMatcher(subset Subset) subsetMatcher {
	return subsetMatcher{
		fields:   normaliseTokens(subset.Fields),
		tags:     normaliseTokens(subset.Tags),
		sections: normaliseTokens(subset.Sections),
	}
}

func (m subsetMatcher) empty() bool {
	return len(m.fields) == 0 && len(m.tags) == 0 && len(m.sections) == 0
}

func (m subsetMatcher) matches(section Section, field Field) bool {
	if _, ok := m.fields[normaliseToken(field.Name)]; ok {
		return true
	}
	for _, tag := range field.Tags {
		if _, ok := m.tags[normaliseToken(tag)]; ok {
			return true
		}
	}
	if id := normaliseToken(section.ID); id != "" {
		if _, ok := m.sections[id]; ok {
			return true
		}
	}
	return false
}

func normaliseTokens(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	result := make(map[string]struct{}, len(values))
	for _, value := range values {
		if token := normaliseToken(value); token != "" {
			result[token] = struct{}{}
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func normaliseToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func parseTokenList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var tokens []string
	for _, part := range strings.Split(raw, ",") {
		token := normaliseToken(part)
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}
