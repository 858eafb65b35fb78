// Package validation runs the ordered check suite against content units.
//
// The suite is a fixed, ordered list of independent checks. Each check is a
// pure function of the unit's parsed state (identifier, metadata block, body,
// filesystem neighbors); no check depends on another check's outcome, so one
// failing never prevents the rest from running. Batch mode applies the suite
// to every discovered unit and tolerates per-unit errors without aborting.
package validation
