package planner

import "fmt"

// CollisionChecker decides whether a target path may be generated.
type CollisionChecker struct {
	acc *Accumulator

	// claimed maps a target path to the source that will generate it
	claimed map[string]string
}

// NewCollisionChecker creates a new CollisionChecker over the scan results.
func NewCollisionChecker(acc *Accumulator) *CollisionChecker {
	return &CollisionChecker{
		acc:     acc,
		claimed: make(map[string]string),
	}
}

// CheckTarget checks whether sourcePath may generate targetPath.
// Returns a Collision if one is detected, or nil if the target is free, in
// which case the target is claimed for sourcePath.
func (c *CollisionChecker) CheckTarget(sourcePath, targetPath string) *Collision {
	if targetPath == sourcePath {
		return &Collision{
			SourcePath: sourcePath,
			TargetPath: targetPath,
			Reason:     "Target path is the source document itself",
		}
	}

	if c.acc.HasExisting(targetPath) {
		return &Collision{
			SourcePath: sourcePath,
			TargetPath: targetPath,
			Reason:     "Document already exists at target path",
		}
	}

	if owner, ok := c.claimed[targetPath]; ok {
		return &Collision{
			SourcePath: sourcePath,
			TargetPath: targetPath,
			Reason:     fmt.Sprintf("Target path already generated from %s", owner),
		}
	}

	c.claimed[targetPath] = sourcePath
	return nil
}

// Owner returns the source that claimed targetPath, if any.
func (c *CollisionChecker) Owner(targetPath string) (string, bool) {
	owner, ok := c.claimed[targetPath]
	return owner, ok
}
