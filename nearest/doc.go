// Package nearest looks up the element of an ascending integer sequence that
// is closest to a target value. Ties resolve to the smaller element and
// targets outside the sequence clamp to its endpoints.
package nearest
