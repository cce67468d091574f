// Package sanitizer normalizes user supplied text before it is validated or
// stored. Functions never fail; input that cannot be normalized is returned
// trimmed.
package sanitizer
