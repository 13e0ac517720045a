// Package entry implements the sweepstakes entry form: the six-field entry
// state, per-field input masks applied on every edit, submit-time validation
// with field-level error messages, and the hand-off of validated entries to a
// Submitter. Masks live in a MaskTable of pure functions keyed by Field so new
// fields do not grow ad-hoc branching. Validation rules are evaluated only on
// Submit; editing a field clears that field's error until the next Submit.
package entry
