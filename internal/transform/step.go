package transform

import (
	"fmt"

	"github.com/proseengine/core/internal/model"
)

// StepResult is the outcome of Step.Apply: either a new document or a
// failure message.
type StepResult struct {
	Doc    *model.Node
	Failed string
}

// Ok reports whether the step applied successfully.
func (r StepResult) Ok() bool { return r.Failed == "" }

func ok(doc *model.Node) StepResult { return StepResult{Doc: doc} }
func fail(msg string) StepResult    { return StepResult{Failed: msg} }
func failf(format string, a ...interface{}) StepResult {
	return fail(fmt.Sprintf(format, a...))
}

// Step is an atomic, reversible mutation. Concrete variants are
// InsertTextStep, DeleteRangeStep, ReplaceRangeStep, AddMarkStep,
// RemoveMarkStep, SetNodeAttrsStep, WrapInStep, UnwrapStep and
// SetBlockTypeStep — a closed set matched exhaustively rather than an open
// class hierarchy.
type Step interface {
	Apply(doc *model.Node) StepResult
	Invert(docBefore *model.Node) Step
	GetMap() *StepMap
	Map(mapping *Mapping) Step // returns nil if the step's range collapsed away
	ToJSON() map[string]interface{}
}

// FromJSON reconstructs a Step from its persisted form.
func FromJSON(s *model.Schema, raw map[string]interface{}) (Step, error) {
	return stepFromJSON(s, raw)
}
