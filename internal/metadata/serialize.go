package metadata

import (
	"sort"
	"strings"
)

// Format renders a Block in canonical form: keys sorted, scalars on one
// line, lists as dash lines (empty lists inline as []), nested mappings
// indented two spaces. Parse(Format(b)) reproduces b for any block within
// the supported grammar.
func Format(b Block) string {
	var sb strings.Builder
	for _, key := range sortedKeys(b) {
		writeValue(&sb, key, b[key], "")
	}
	return sb.String()
}

// FormatDocument renders a complete document: delimited metadata block
// followed by the body.
func FormatDocument(b Block, body string) string {
	var sb strings.Builder
	sb.WriteString(Delimiter + "\n")
	sb.WriteString(Format(b))
	sb.WriteString(Delimiter + "\n")
	sb.WriteString(body)
	return sb.String()
}

func writeValue(sb *strings.Builder, key string, v Value, indent string) {
	switch v.Kind {
	case ScalarKind:
		if v.Scalar == "" {
			sb.WriteString(indent + key + ":\n")
		} else {
			sb.WriteString(indent + key + ": " + v.Scalar + "\n")
		}
	case ListKind:
		if len(v.List) == 0 {
			sb.WriteString(indent + key + ": []\n")
			return
		}
		sb.WriteString(indent + key + ":\n")
		for _, item := range v.List {
			sb.WriteString(indent + "  - " + item + "\n")
		}
	case MapKind:
		sb.WriteString(indent + key + ":\n")
		for _, sub := range sortedValueKeys(v.Map) {
			writeValue(sb, sub, v.Map[sub], indent+"  ")
		}
	}
}

func sortedKeys(b Block) []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedValueKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
