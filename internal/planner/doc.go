// Package planner handles the planning phase of a conversion run.
//
// The scan phase fills an Accumulator with one property tree per matched
// source document and the path of every document already present. The
// planner then turns that snapshot into a deterministic ConvertPlan: which
// targets to generate, which sources collide with an existing document, and
// which originals to retire.
//
// Key responsibilities:
//   - Accumulate per-document trees safely across parallel scanners
//   - Detect target collisions (existing documents, targets claimed twice)
//   - Apply the retire policy to the matched originals
package planner
