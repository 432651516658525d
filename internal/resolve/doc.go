// Package resolve binds noisy screening titles to canonical catalog movies.
//
// Selection runs a fixed rule order over search candidates: director match
// when the venue supplied one, then year, then exact title, then normalized
// title and word overlap. A record whose supplied director contradicts every
// candidate stays unresolved; guessing wrong is worse than not guessing.
package resolve
