// Package geo provides great-circle distance and walking-time helpers
// used by the planner and the stop proximity search.
//
// Distances are haversine over a spherical Earth (radius 6,371,000 m),
// which is accurate to well under a percent at walking scales. Invalid
// coordinates yield +Inf rather than an error: an unreachable point
// simply never survives a radius filter or a time comparison.
package geo
