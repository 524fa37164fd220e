package editor

import (
	"fmt"
	"strings"
)

const (
	MsgRequired    = "Required"
	MsgNegative    = "Must not be negative"
	MsgNotPositive = "Must be greater than zero"
	MsgInvalid     = "Invalid"
)

type IngredientError struct {
	Amount       string `json:"amount,omitempty"`
	Unit         string `json:"unit,omitempty"`
	IngredientID string `json:"ingredientId,omitempty"`
}

func (e IngredientError) Empty() bool {
	return e == IngredientError{}
}

type StepError struct {
	Mixing string `json:"mixing,omitempty"`
	Tool   string `json:"tool,omitempty"`
	// Lines is set when a mixing step has no lines at all.
	Lines string `json:"lines,omitempty"`
	// Ingredients is aligned with the step's lines; only set for mixing
	// steps that have a failing line.
	Ingredients []IngredientError `json:"ingredients,omitempty"`
}

func (e StepError) Empty() bool {
	if e.Mixing != "" || e.Tool != "" || e.Lines != "" {
		return false
	}
	for _, line := range e.Ingredients {
		if !line.Empty() {
			return false
		}
	}
	return true
}

// ErrorReport mirrors the draft and is populated only where a rule failed.
type ErrorReport struct {
	Name         string `json:"name,omitempty"`
	Price        string `json:"price,omitempty"`
	GlassID      string `json:"glassId,omitempty"`
	GlassWithIce string `json:"glassWithIce,omitempty"`
	// Steps is aligned with the draft's steps when any step failed.
	Steps []StepError `json:"steps,omitempty"`
}

func (r ErrorReport) Valid() bool {
	if r.Name != "" || r.Price != "" || r.GlassID != "" || r.GlassWithIce != "" {
		return false
	}
	for _, step := range r.Steps {
		if !step.Empty() {
			return false
		}
	}
	return true
}

// Fields flattens the report into "steps.0.ingredients.1.unit" style paths.
func (r ErrorReport) Fields() map[string]string {
	fields := make(map[string]string)
	put := func(path, message string) {
		if message != "" {
			fields[path] = message
		}
	}
	put("name", r.Name)
	put("price", r.Price)
	put("glassId", r.GlassID)
	put("glassWithIce", r.GlassWithIce)
	for i, step := range r.Steps {
		put(fmt.Sprintf("steps.%d.mixing", i), step.Mixing)
		put(fmt.Sprintf("steps.%d.tool", i), step.Tool)
		put(fmt.Sprintf("steps.%d.ingredients", i), step.Lines)
		for j, line := range step.Ingredients {
			prefix := fmt.Sprintf("steps.%d.ingredients.%d.", i, j)
			put(prefix+"amount", line.Amount)
			put(prefix+"unit", line.Unit)
			put(prefix+"ingredientId", line.IngredientID)
		}
	}
	return fields
}

// ValidationError carries a failed report out of Submit.
type ValidationError struct {
	Report ErrorReport
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("draft is invalid: %d field(s) failed", len(ve.Report.Fields()))
}

// Validate checks the draft without modifying it. Lines of steps that are
// not mixing are never inspected.
func Validate(d *RecipeDraft) ErrorReport {
	var report ErrorReport
	if strings.TrimSpace(d.Name) == "" {
		report.Name = MsgRequired
	}
	switch {
	case d.Price == nil:
		report.Price = MsgRequired
	case *d.Price < 0:
		report.Price = MsgNegative
	}
	if strings.TrimSpace(d.GlassID) == "" {
		report.GlassID = MsgRequired
	}
	switch {
	case d.GlassWithIce == "":
		report.GlassWithIce = MsgRequired
	case !d.GlassWithIce.Valid():
		report.GlassWithIce = MsgInvalid
	}

	steps := make([]StepError, len(d.Steps))
	failed := false
	for i, step := range d.Steps {
		steps[i] = validateStep(step)
		if !steps[i].Empty() {
			failed = true
		}
	}
	if failed {
		report.Steps = steps
	}
	return report
}

func validateStep(step StepDraft) StepError {
	var stepError StepError
	if step.Mixing == nil {
		stepError.Mixing = MsgRequired
	}
	switch {
	case step.Tool == "":
		stepError.Tool = MsgRequired
	case step.Mixing != nil && !step.Tool.AllowedFor(*step.Mixing):
		stepError.Tool = MsgInvalid
	}
	if !step.IsMixing() {
		return stepError
	}
	if len(step.Ingredients) == 0 {
		stepError.Lines = MsgRequired
		return stepError
	}

	lines := make([]IngredientError, len(step.Ingredients))
	failed := false
	for i, line := range step.Ingredients {
		lines[i] = validateLine(line)
		if !lines[i].Empty() {
			failed = true
		}
	}
	if failed {
		stepError.Ingredients = lines
	}
	return stepError
}

func validateLine(line IngredientLineDraft) IngredientError {
	var lineError IngredientError
	switch {
	case line.Amount == nil:
		lineError.Amount = MsgRequired
	case *line.Amount <= 0:
		lineError.Amount = MsgNotPositive
	}
	switch {
	case line.Unit == "":
		lineError.Unit = MsgRequired
	case !line.Unit.Valid():
		lineError.Unit = MsgInvalid
	}
	if strings.TrimSpace(line.IngredientID) == "" {
		lineError.IngredientID = MsgRequired
	}
	return lineError
}
