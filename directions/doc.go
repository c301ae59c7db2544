// Package directions defines the walking-directions collaborator the
// trip assembler consumes, an OSRM-backed HTTP implementation, and the
// straight-line estimate the assembler degrades to when the provider
// fails. A provider failure never blocks a bus recommendation; the
// resulting segment is just flagged as an estimate.
package directions
