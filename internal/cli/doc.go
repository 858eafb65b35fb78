// Package cli wires the curator commands. It is a thin front-end over the
// core packages: it collects input (flags, declarative config files, or
// interactive prompts), dispatches to taxonomy/scaffold/validation/catalog,
// and maps errors and check outcomes to the process exit-code contract.
package cli
