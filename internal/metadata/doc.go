// Package metadata parses the leading delimited metadata block of a content
// unit into a key/value structure.
//
// The grammar is deliberately restricted: flat "key: value" scalars, string
// lists (inline bracket form or dash lines), and exactly one level of nested
// mapping. Deeper nesting and list-of-lists are rejected with a ParseError
// naming the offending line rather than silently truncated. The parser is
// permissive about which keys appear and strict about grammar; required-key
// and vocabulary rules are enforced by the validation engine, not here.
package metadata
