package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNewDraft(t *testing.T) {
	report := Validate(NewDraft())
	assert.False(t, report.Valid())
	assert.Equal(t, map[string]string{
		"name":    MsgRequired,
		"price":   MsgRequired,
		"glassId": MsgRequired,
	}, report.Fields())
}

func TestValidateSteps(t *testing.T) {
	d := NewDraft()
	d.SetName("Mojito")
	require.NoError(t, d.SetPrice(7))
	d.SetGlass("g1")

	t.Run("NonMixingLinesAreSkipped", func(t *testing.T) {
		step := d.AddStep()
		require.NoError(t, d.SetStepMixing(step, false))
		report := Validate(d)
		assert.True(t, report.Valid(), "unexpected %v", report.Fields())
		assert.Empty(t, report.Steps)
		require.NoError(t, d.RemoveStep(step))
	})

	t.Run("MixingLines", func(t *testing.T) {
		step := d.AddStep()
		line, err := d.AddIngredientLine(step)
		require.NoError(t, err)
		require.NoError(t, d.SetLineIngredient(step, 0, "i1"))
		require.NoError(t, d.SetLineAmount(step, 0, 5))
		require.NoError(t, d.SetLineAmount(step, line, 0))
		require.NoError(t, d.SetLineUnit(step, line, ""))

		report := Validate(d)
		assert.False(t, report.Valid())
		assert.Equal(t, map[string]string{
			"steps.0.ingredients.1.amount":       MsgNotPositive,
			"steps.0.ingredients.1.unit":         MsgRequired,
			"steps.0.ingredients.1.ingredientId": MsgRequired,
		}, report.Fields())
		require.Len(t, report.Steps[0].Ingredients, 2)
		assert.True(t, report.Steps[0].Ingredients[0].Empty())

		require.NoError(t, d.RemoveIngredientLine(step, line))
		assert.True(t, Validate(d).Valid())
	})

	t.Run("UnsetMixingAndTool", func(t *testing.T) {
		d := d.Clone()
		d.Steps = append(d.Steps, StepDraft{StepNumber: len(d.Steps)})
		fields := Validate(d).Fields()
		assert.Equal(t, MsgRequired, fields["steps.1.mixing"])
		assert.Equal(t, MsgRequired, fields["steps.1.tool"])
	})

	t.Run("MixingStepWithoutLines", func(t *testing.T) {
		input := BuildPayload(d)
		(*input.Steps)[0].Ingredients = nil
		report := Validate(DraftFromInput(input))
		assert.False(t, report.Valid())
		assert.Equal(t, map[string]string{"steps.0.ingredients": MsgRequired}, report.Fields())
	})

	t.Run("ScalarRules", func(t *testing.T) {
		d := d.Clone()
		price := -1.0
		d.Price = &price
		d.GlassWithIce = "Shaved"
		d.Name = "   "
		fields := Validate(d).Fields()
		assert.Equal(t, MsgNegative, fields["price"])
		assert.Equal(t, MsgInvalid, fields["glassWithIce"])
		assert.Equal(t, MsgRequired, fields["name"])
	})
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Report: Validate(NewDraft())}
	assert.Equal(t, "draft is invalid: 3 field(s) failed", err.Error())
}
