// Package scaffold materializes new content units from embedded templates.
// It powers the "curator create" command, producing a single definition
// document or a full package directory (primary document, executable tool
// stubs, reference stubs, assets) from a validated creation configuration.
//
// Validation is strictly ordered before any filesystem write: the creation
// config is checked against an embedded JSON Schema and the identifier
// grammar, and every output file is rendered in memory, before the first
// byte lands on disk. On a config error zero files exist afterwards.
package scaffold
