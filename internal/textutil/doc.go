// Package textutil provides the string normalization primitives shared by
// title matching, director comparison, and rating-source slug construction.
package textutil
