// Package titles cleans raw cinema listing titles for catalogue search.
//
// Venue sites decorate titles with screening types, format notes, and
// certificates ("Preview: Jaws (4K Restoration) PG"). Normalization runs an
// ordered list of pure rewrite rules so each rule stays unit-testable and
// reorderable. The whole pass is total and idempotent.
package titles
