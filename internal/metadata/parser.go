package metadata

import (
	"strings"

	"github.com/curator-labs/curator/internal/errdefs"
)

// Delimiter is the line that opens and closes a metadata block.
const Delimiter = "---"

// SplitDocument separates a document into its metadata block text (without
// delimiters) and the remaining body. found is false when the document does
// not open with a delimiter line. An opening delimiter without a closing one
// is a ParseError.
func SplitDocument(text string) (meta string, body string, found bool, err error) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != Delimiter {
		return "", text, false, nil
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == Delimiter {
			meta = strings.Join(lines[1:i], "\n")
			body = strings.Join(lines[i+1:], "\n")
			return meta, body, true, nil
		}
	}
	return "", "", true, errdefs.Parse(len(lines), "metadata block opened with %q but never closed", Delimiter)
}

// parse modes.
const (
	modeNone    = iota // between top-level entries
	modePending        // top-level "key:" seen, shape not yet known
	modeList           // accumulating dash-line items for a top-level key
	modeMap            // accumulating subkeys for a top-level key
)

type parser struct {
	block Block
	mode  int

	key     string // top-level key owning the open context
	keyLine int

	items      []string // list mode accumulator
	listIndent int

	mapVal    map[string]Value // map mode accumulator
	mapIndent int

	subKey        string   // bare subkey awaiting a dash list
	subItems      []string // sub-list accumulator
	subListIndent int
	subListOpen   bool

	lastInlineKey string // last key assigned via inline list, for dual-declaration detection
}

// Parse parses metadata block text (the lines between the delimiters) into a
// Block. Line numbers in errors are 1-based relative to the block text.
//
// Duplicate keys take the last value and do not error. An empty value after
// a colon is the empty string. Constructs outside the restricted grammar
// (nesting beyond one level, list-of-lists, a list declared both inline and
// as dash lines) fail deterministically.
func Parse(text string) (Block, error) {
	p := &parser{block: Block{}}

	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		lineNo := i + 1
		line := stripComment(raw)
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.ContainsRune(indentOf(line), '\t') {
			return nil, errdefs.Parse(lineNo, "tab in indentation; use spaces")
		}
		if err := p.consume(lineNo, line); err != nil {
			return nil, err
		}
	}

	p.closeTopLevel()
	return p.block, nil
}

// consume handles a single non-blank, comment-stripped line.
func (p *parser) consume(lineNo int, line string) error {
	indent := len(indentOf(line))
	content := strings.TrimSpace(line)

	if content == "-" || strings.HasPrefix(content, "- ") {
		return p.consumeDash(lineNo, indent, content)
	}

	colon := strings.Index(content, ":")
	if colon < 0 {
		return errdefs.Parse(lineNo, "expected %q, got %q", "key: value", content)
	}
	key := strings.TrimSpace(content[:colon])
	val := strings.TrimSpace(content[colon+1:])
	if key == "" {
		return errdefs.Parse(lineNo, "empty key before colon")
	}

	if indent == 0 {
		return p.consumeTopKey(lineNo, key, val)
	}
	return p.consumeSubKey(lineNo, indent, key, val)
}

func (p *parser) consumeDash(lineNo, indent int, content string) error {
	item := ""
	if content != "-" {
		item = strings.TrimSpace(content[2:])
	}
	if strings.HasPrefix(item, "[") || item == "-" || strings.HasPrefix(item, "- ") {
		return errdefs.Parse(lineNo, "list-of-lists is not supported")
	}

	switch p.mode {
	case modePending:
		p.mode = modeList
		p.listIndent = indent
		p.items = []string{unquote(item)}
		return nil
	case modeList:
		if indent > p.listIndent {
			return errdefs.Parse(lineNo, "list-of-lists is not supported")
		}
		if indent < p.listIndent {
			return errdefs.Parse(lineNo, "inconsistent list indentation (expected %d spaces, got %d)", p.listIndent, indent)
		}
		p.items = append(p.items, unquote(item))
		return nil
	case modeMap:
		if p.subKey == "" {
			return errdefs.Parse(lineNo, "list item has no owning key inside mapping %q", p.key)
		}
		if !p.subListOpen {
			if indent <= p.mapIndent {
				return errdefs.Parse(lineNo, "list item for %q must be indented past its key", p.subKey)
			}
			p.subListOpen = true
			p.subListIndent = indent
			p.subItems = []string{unquote(item)}
			return nil
		}
		if indent != p.subListIndent {
			return errdefs.Parse(lineNo, "inconsistent list indentation (expected %d spaces, got %d)", p.subListIndent, indent)
		}
		p.subItems = append(p.subItems, unquote(item))
		return nil
	default: // modeNone
		if p.lastInlineKey != "" {
			return errdefs.Parse(lineNo, "list for %q declared both inline and as dash lines", p.lastInlineKey)
		}
		return errdefs.Parse(lineNo, "list item has no owning key")
	}
}

func (p *parser) consumeTopKey(lineNo int, key, val string) error {
	p.closeTopLevel()
	p.lastInlineKey = ""

	switch {
	case val == "":
		p.mode = modePending
		p.key = key
		p.keyLine = lineNo
	case isInlineList(val):
		items, err := parseInlineList(lineNo, val)
		if err != nil {
			return err
		}
		p.block[key] = Value{Kind: ListKind, List: items}
		p.lastInlineKey = key
	default:
		p.block[key] = String(unquote(val))
	}
	return nil
}

func (p *parser) consumeSubKey(lineNo, indent int, key, val string) error {
	switch p.mode {
	case modePending:
		p.mode = modeMap
		p.mapIndent = indent
		p.mapVal = map[string]Value{}
	case modeMap:
		if indent > p.mapIndent {
			if p.subKey != "" && !p.subListOpen {
				return errdefs.Parse(lineNo, "mapping-of-mappings is not supported (key %q nests under %q)", key, p.subKey)
			}
			return errdefs.Parse(lineNo, "inconsistent mapping indentation (expected %d spaces, got %d)", p.mapIndent, indent)
		}
		if indent < p.mapIndent {
			return errdefs.Parse(lineNo, "inconsistent mapping indentation (expected %d spaces, got %d)", p.mapIndent, indent)
		}
		p.closeSubKey()
	case modeList:
		return errdefs.Parse(lineNo, "expected list item under %q, got %q", p.key, key)
	default: // modeNone
		return errdefs.Parse(lineNo, "indented key %q has no parent mapping", key)
	}

	switch {
	case val == "":
		p.subKey = key
	case isInlineList(val):
		items, err := parseInlineList(lineNo, val)
		if err != nil {
			return err
		}
		p.mapVal[key] = Value{Kind: ListKind, List: items}
	default:
		p.mapVal[key] = String(unquote(val))
	}
	return nil
}

// closeSubKey commits a bare subkey: a dash list if one accumulated,
// otherwise the empty string.
func (p *parser) closeSubKey() {
	if p.subKey == "" {
		return
	}
	if p.subListOpen {
		p.mapVal[p.subKey] = Value{Kind: ListKind, List: p.subItems}
	} else {
		p.mapVal[p.subKey] = String("")
	}
	p.subKey = ""
	p.subItems = nil
	p.subListOpen = false
}

// closeTopLevel commits whatever context is open. A bare "key:" with no
// following content is the empty string, not null.
func (p *parser) closeTopLevel() {
	switch p.mode {
	case modePending:
		p.block[p.key] = String("")
	case modeList:
		p.block[p.key] = Value{Kind: ListKind, List: p.items}
	case modeMap:
		p.closeSubKey()
		p.block[p.key] = Value{Kind: MapKind, Map: p.mapVal}
	}
	p.mode = modeNone
	p.key = ""
	p.items = nil
	p.mapVal = nil
}

func isInlineList(val string) bool {
	return strings.HasPrefix(val, "[") && strings.HasSuffix(val, "]")
}

func parseInlineList(lineNo int, val string) ([]string, error) {
	inner := strings.TrimSpace(val[1 : len(val)-1])
	if strings.Contains(inner, "[") {
		return nil, errdefs.Parse(lineNo, "list-of-lists is not supported")
	}
	if inner == "" {
		return []string{}, nil
	}
	parts := strings.Split(inner, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		items = append(items, unquote(strings.TrimSpace(part)))
	}
	return items, nil
}

// stripComment removes full-line and trailing " #" comments. A '#' must be
// preceded by whitespace (or start the line) to count as a comment marker.
func stripComment(line string) string {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") {
		return ""
	}
	for i := 1; i < len(line); i++ {
		if line[i] == '#' && (line[i-1] == ' ' || line[i-1] == '\t') {
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}

func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// unquote strips one pair of matching surrounding quotes, if present.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
