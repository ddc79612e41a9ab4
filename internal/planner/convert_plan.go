package planner

import (
	"fmt"

	"github.com/danieljhkim/propyaml/internal/config"
	"github.com/danieljhkim/propyaml/internal/docpath"
)

// Options controls how the plan is built.
type Options struct {
	// TargetSuffix is the extension given to generated documents
	TargetSuffix string

	// Retire decides which matched originals are retired
	Retire config.RetirePolicy
}

// BuildConvertPlan generates a deterministic plan from the scan results.
// Sources are visited in lexical order so collisions between sources that
// compute the same target are always resolved the same way.
func BuildConvertPlan(acc *Accumulator, opts Options) (*ConvertPlan, error) {
	if opts.TargetSuffix == "" {
		return nil, fmt.Errorf("target suffix is required")
	}
	if opts.Retire == "" {
		opts.Retire = config.RetireAlways
	}
	if !opts.Retire.Valid() {
		return nil, fmt.Errorf("invalid retire policy %q", opts.Retire)
	}

	plan := NewConvertPlan()
	checker := NewCollisionChecker(acc)
	sources := acc.Sources()

	for _, source := range sources {
		tree, _ := acc.Tree(source)
		target := docpath.WithExtension(source, opts.TargetSuffix)

		if collision := checker.CheckTarget(source, target); collision != nil {
			plan.AddCollision(*collision)
			continue
		}

		plan.AddOperation(Operation{
			Type:       OpGenerate,
			SourcePath: source,
			TargetPath: target,
			Tree:       tree,
		})
	}

	for _, source := range sources {
		owner, _ := checker.Owner(docpath.WithExtension(source, opts.TargetSuffix))
		generated := owner == source

		switch opts.Retire {
		case config.RetireNever:
			continue
		case config.RetireConverted:
			if !generated {
				continue
			}
		}

		plan.AddOperation(Operation{
			Type:                 OpRetire,
			SourcePath:           source,
			RetiredWithoutTarget: !generated,
		})
	}

	return plan, nil
}
