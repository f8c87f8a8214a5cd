// Package model holds the geometric page objects the extraction pipeline
// works on (points, axis-aligned line segments, positioned texts) and the
// Schedule value it produces.
package model
