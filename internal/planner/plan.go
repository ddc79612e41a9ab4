package planner

import "github.com/danieljhkim/propyaml/internal/proptree"

// ConvertPlan represents the work decided for one conversion run.
type ConvertPlan struct {
	// Operations is the ordered list of operations to execute.
	// Every generate operation precedes every retire operation.
	Operations []Operation

	// Collisions lists sources whose target was not generated
	Collisions []Collision
}

// Operation represents a single document operation to execute.
type Operation struct {
	// Type is the operation type: "generate" or "retire"
	Type string

	// SourcePath is the root-relative path of the flat source document
	SourcePath string

	// TargetPath is the root-relative path of the generated document
	// (generate only)
	TargetPath string

	// Tree is the property tree to render (generate only)
	Tree *proptree.Tree

	// RetiredWithoutTarget is set on a retire operation whose source had
	// its generation skipped
	RetiredWithoutTarget bool
}

// Collision represents a target that could not be generated.
type Collision struct {
	// SourcePath is the source document whose generation was skipped
	SourcePath string

	// TargetPath is the computed target path
	TargetPath string

	// Reason is a human-readable explanation of the collision
	Reason string
}

// Operation type constants
const (
	OpGenerate = "generate"
	OpRetire   = "retire"
)

// NewConvertPlan creates a new empty ConvertPlan.
func NewConvertPlan() *ConvertPlan {
	return &ConvertPlan{
		Operations: []Operation{},
		Collisions: []Collision{},
	}
}

// HasCollisions returns true if any generation was skipped.
func (p *ConvertPlan) HasCollisions() bool {
	return len(p.Collisions) > 0
}

// AddOperation adds an operation to the plan.
func (p *ConvertPlan) AddOperation(op Operation) {
	p.Operations = append(p.Operations, op)
}

// AddCollision adds a collision to the plan.
func (p *ConvertPlan) AddCollision(c Collision) {
	p.Collisions = append(p.Collisions, c)
}

// Generates returns the generate operations in plan order.
func (p *ConvertPlan) Generates() []Operation {
	return p.filter(OpGenerate)
}

// Retires returns the retire operations in plan order.
func (p *ConvertPlan) Retires() []Operation {
	return p.filter(OpRetire)
}

func (p *ConvertPlan) filter(opType string) []Operation {
	var ops []Operation
	for _, op := range p.Operations {
		if op.Type == opType {
			ops = append(ops, op)
		}
	}
	return ops
}
