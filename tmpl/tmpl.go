// Package tmpl fills `@{name}` placeholders in generator templates.
package tmpl

import (
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// Placeholder returns the placeholder text for name.
func Placeholder(name string) string {
	return "@{" + name + "}"
}

// Fill replaces every `@{name}` in template with mapping[name]. Replacement
// is a single pass: placeholders inside substituted values are not expanded
// again. Placeholders with no mapping entry are left as they are.
func Fill(template string, mapping map[string]string) string {
	if len(mapping) == 0 {
		return template
	}
	names := maps.Keys(mapping)
	sort.Strings(names)
	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, Placeholder(name), mapping[name])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Placeholders returns the distinct placeholder names used in template, in
// order of first appearance.
func Placeholders(template string) []string {
	var names []string
	seen := map[string]bool{}
	for {
		start := strings.Index(template, "@{")
		if start < 0 {
			return names
		}
		end := strings.IndexByte(template[start:], '}')
		if end < 0 {
			return names
		}
		name := template[start+2 : start+end]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		template = template[start+end+1:]
	}
}
