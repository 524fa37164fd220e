package editor

import (
	"errors"
	"fmt"
	"strings"

	"philcali.me/barmanager/internal/ordering"
)

var (
	ErrStepNotFound  = errors.New("step not found")
	ErrLineNotFound  = errors.New("ingredient line not found")
	ErrLastLine      = errors.New("a mixing step needs at least one ingredient")
	ErrToolNotInSet  = errors.New("tool does not match the step's mixing flag")
	ErrUnknownUnit   = errors.New("unknown unit")
	ErrUnknownIce    = errors.New("unknown ice type")
	ErrNegativePrice = errors.New("price must not be negative")
)

type IngredientLineDraft struct {
	ID               string
	IngredientID     string
	IngredientNumber int
	Amount           *float64
	Unit             Unit
}

type StepDraft struct {
	ID         string
	StepNumber int
	// Mixing is nil until the user has chosen.
	Mixing      *bool
	Tool        Tool
	Ingredients []IngredientLineDraft
}

// IsMixing reports an explicitly set, true mixing flag.
func (s StepDraft) IsMixing() bool {
	return s.Mixing != nil && *s.Mixing
}

type RecipeDraft struct {
	ID           string
	Name         string
	Description  string
	Price        *float64
	Tags         []string
	GlassID      string
	GlassWithIce IceType
	GarnishID    string
	// Image is a data URL, empty when no image is attached.
	Image string
	Steps []StepDraft
}

func NewDraft() *RecipeDraft {
	return &RecipeDraft{
		Tags:         []string{},
		GlassWithIce: IceWithout,
		Steps:        []StepDraft{},
	}
}

func renumberStep(step StepDraft, position int) StepDraft {
	step.StepNumber = position
	return step
}

func renumberLine(line IngredientLineDraft, position int) IngredientLineDraft {
	line.IngredientNumber = position
	return line
}

func newLine() IngredientLineDraft {
	return IngredientLineDraft{Unit: DefaultUnit}
}

func (d *RecipeDraft) step(index int) (*StepDraft, error) {
	if index < 0 || index >= len(d.Steps) {
		return nil, fmt.Errorf("%w: %d", ErrStepNotFound, index)
	}
	return &d.Steps[index], nil
}

func (d *RecipeDraft) line(stepIndex, lineIndex int) (*IngredientLineDraft, error) {
	step, err := d.step(stepIndex)
	if err != nil {
		return nil, err
	}
	if lineIndex < 0 || lineIndex >= len(step.Ingredients) {
		return nil, fmt.Errorf("%w: step %d line %d", ErrLineNotFound, stepIndex, lineIndex)
	}
	return &step.Ingredients[lineIndex], nil
}

func (d *RecipeDraft) SetName(name string) {
	d.Name = name
}

func (d *RecipeDraft) SetDescription(description string) {
	d.Description = description
}

func (d *RecipeDraft) SetPrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	d.Price = &price
	return nil
}

func (d *RecipeDraft) ClearPrice() {
	d.Price = nil
}

func (d *RecipeDraft) SetGlass(glassID string) {
	d.GlassID = strings.TrimSpace(glassID)
}

func (d *RecipeDraft) SetGlassWithIce(ice IceType) error {
	if ice != "" && !ice.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownIce, ice)
	}
	d.GlassWithIce = ice
	return nil
}

// SetGarnish selects a garnish; an empty id clears the selection.
func (d *RecipeDraft) SetGarnish(garnishID string) {
	d.GarnishID = strings.TrimSpace(garnishID)
}

// AddStep appends a mixing step with one empty line.
func (d *RecipeDraft) AddStep() int {
	mixing := true
	d.Steps = ordering.Append(d.Steps, StepDraft{
		Mixing:      &mixing,
		Tool:        DefaultTool(true),
		Ingredients: []IngredientLineDraft{newLine()},
	}, renumberStep)
	return len(d.Steps) - 1
}

func (d *RecipeDraft) RemoveStep(index int) error {
	if _, err := d.step(index); err != nil {
		return err
	}
	d.Steps = ordering.Remove(d.Steps, index, renumberStep)
	return nil
}

func (d *RecipeDraft) MoveStepUp(index int) {
	d.Steps = ordering.MoveUp(d.Steps, index, renumberStep)
}

func (d *RecipeDraft) MoveStepDown(index int) {
	d.Steps = ordering.MoveDown(d.Steps, index, renumberStep)
}

// SetStepMixing sets the flag and resets the tool to the matching set's
// default. A step becoming a mixing step gets a line if it has none.
func (d *RecipeDraft) SetStepMixing(index int, mixing bool) error {
	step, err := d.step(index)
	if err != nil {
		return err
	}
	step.Mixing = &mixing
	step.Tool = DefaultTool(mixing)
	if mixing && len(step.Ingredients) == 0 {
		step.Ingredients = []IngredientLineDraft{newLine()}
	}
	return nil
}

func (d *RecipeDraft) SetStepTool(index int, tool Tool) error {
	step, err := d.step(index)
	if err != nil {
		return err
	}
	if step.Mixing != nil && !tool.AllowedFor(*step.Mixing) {
		return fmt.Errorf("%w: %s", ErrToolNotInSet, tool)
	}
	step.Tool = tool
	return nil
}

func (d *RecipeDraft) AddIngredientLine(stepIndex int) (int, error) {
	step, err := d.step(stepIndex)
	if err != nil {
		return 0, err
	}
	step.Ingredients = ordering.Append(step.Ingredients, newLine(), renumberLine)
	return len(step.Ingredients) - 1, nil
}

// CanRemoveIngredientLine is false for the last line of a mixing step.
func (d *RecipeDraft) CanRemoveIngredientLine(stepIndex int) bool {
	step, err := d.step(stepIndex)
	if err != nil {
		return false
	}
	return !(step.IsMixing() && len(step.Ingredients) <= 1) && len(step.Ingredients) > 0
}

func (d *RecipeDraft) RemoveIngredientLine(stepIndex, lineIndex int) error {
	if _, err := d.line(stepIndex, lineIndex); err != nil {
		return err
	}
	if !d.CanRemoveIngredientLine(stepIndex) {
		return ErrLastLine
	}
	step := &d.Steps[stepIndex]
	step.Ingredients = ordering.Remove(step.Ingredients, lineIndex, renumberLine)
	return nil
}

func (d *RecipeDraft) MoveIngredientLineUp(stepIndex, lineIndex int) error {
	step, err := d.step(stepIndex)
	if err != nil {
		return err
	}
	step.Ingredients = ordering.MoveUp(step.Ingredients, lineIndex, renumberLine)
	return nil
}

func (d *RecipeDraft) MoveIngredientLineDown(stepIndex, lineIndex int) error {
	step, err := d.step(stepIndex)
	if err != nil {
		return err
	}
	step.Ingredients = ordering.MoveDown(step.Ingredients, lineIndex, renumberLine)
	return nil
}

func (d *RecipeDraft) SetLineIngredient(stepIndex, lineIndex int, ingredientID string) error {
	line, err := d.line(stepIndex, lineIndex)
	if err != nil {
		return err
	}
	line.IngredientID = strings.TrimSpace(ingredientID)
	return nil
}

func (d *RecipeDraft) SetLineAmount(stepIndex, lineIndex int, amount float64) error {
	line, err := d.line(stepIndex, lineIndex)
	if err != nil {
		return err
	}
	line.Amount = &amount
	return nil
}

func (d *RecipeDraft) ClearLineAmount(stepIndex, lineIndex int) error {
	line, err := d.line(stepIndex, lineIndex)
	if err != nil {
		return err
	}
	line.Amount = nil
	return nil
}

func (d *RecipeDraft) SetLineUnit(stepIndex, lineIndex int, unit Unit) error {
	line, err := d.line(stepIndex, lineIndex)
	if err != nil {
		return err
	}
	if unit != "" && !unit.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownUnit, unit)
	}
	line.Unit = unit
	return nil
}

// Clone returns a deep copy, so a caller can hold a snapshot while the
// draft keeps changing.
func (d *RecipeDraft) Clone() *RecipeDraft {
	out := *d
	out.Tags = append([]string{}, d.Tags...)
	if d.Price != nil {
		price := *d.Price
		out.Price = &price
	}
	out.Steps = make([]StepDraft, len(d.Steps))
	for i, step := range d.Steps {
		if step.Mixing != nil {
			mixing := *step.Mixing
			step.Mixing = &mixing
		}
		lines := make([]IngredientLineDraft, len(step.Ingredients))
		for j, line := range step.Ingredients {
			if line.Amount != nil {
				amount := *line.Amount
				line.Amount = &amount
			}
			lines[j] = line
		}
		step.Ingredients = lines
		out.Steps[i] = step
	}
	return &out
}
