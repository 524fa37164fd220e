package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positions(d *RecipeDraft) ([]int, [][]int) {
	steps := make([]int, len(d.Steps))
	lines := make([][]int, len(d.Steps))
	for i, step := range d.Steps {
		steps[i] = step.StepNumber
		for _, line := range step.Ingredients {
			lines[i] = append(lines[i], line.IngredientNumber)
		}
	}
	return steps, lines
}

func TestStepsStayNumbered(t *testing.T) {
	d := NewDraft()
	d.AddStep()
	d.AddStep()
	d.AddStep()
	d.Steps[0].ID, d.Steps[1].ID, d.Steps[2].ID = "a", "b", "c"

	d.MoveStepDown(0)
	d.MoveStepUp(2)
	require.NoError(t, d.RemoveStep(0))

	steps, _ := positions(d)
	assert.Equal(t, []int{0, 1}, steps)
	assert.Equal(t, "c", d.Steps[0].ID)
	assert.Equal(t, "a", d.Steps[1].ID)

	d.MoveStepUp(0)
	d.MoveStepDown(1)
	assert.Equal(t, "c", d.Steps[0].ID, "moves at the edges are ignored")
	assert.ErrorIs(t, d.RemoveStep(5), ErrStepNotFound)
}

func TestLinesStayNumbered(t *testing.T) {
	d := NewDraft()
	step := d.AddStep()
	for i := 0; i < 3; i++ {
		_, err := d.AddIngredientLine(step)
		require.NoError(t, err)
	}
	require.NoError(t, d.SetLineIngredient(step, 3, "last"))
	require.NoError(t, d.MoveIngredientLineUp(step, 3))
	require.NoError(t, d.RemoveIngredientLine(step, 0))

	_, lines := positions(d)
	assert.Equal(t, []int{0, 1, 2}, lines[0])
	assert.Equal(t, "last", d.Steps[0].Ingredients[1].IngredientID)
}

func TestMixingToggleResetsTool(t *testing.T) {
	d := NewDraft()
	step := d.AddStep()
	require.NoError(t, d.SetStepTool(step, ToolStir))

	require.NoError(t, d.SetStepMixing(step, false))
	assert.Equal(t, DefaultTool(false), d.Steps[step].Tool)
	assert.True(t, d.Steps[step].Tool.AllowedFor(false))
	assert.ErrorIs(t, d.SetStepTool(step, ToolShake), ErrToolNotInSet)

	require.NoError(t, d.SetStepMixing(step, true))
	assert.Equal(t, DefaultTool(true), d.Steps[step].Tool)
	assert.True(t, d.Steps[step].Tool.AllowedFor(true))
}

func TestLastLineOfMixingStep(t *testing.T) {
	d := NewDraft()
	step := d.AddStep()
	require.Len(t, d.Steps[step].Ingredients, 1)

	assert.False(t, d.CanRemoveIngredientLine(step))
	assert.ErrorIs(t, d.RemoveIngredientLine(step, 0), ErrLastLine)
	assert.Len(t, d.Steps[step].Ingredients, 1)

	require.NoError(t, d.SetStepMixing(step, false))
	assert.True(t, d.CanRemoveIngredientLine(step))
	require.NoError(t, d.RemoveIngredientLine(step, 0))
	assert.Empty(t, d.Steps[step].Ingredients)

	require.NoError(t, d.SetStepMixing(step, true))
	assert.Len(t, d.Steps[step].Ingredients, 1, "a step turning into a mixing step gets a line")
}

func TestSetters(t *testing.T) {
	d := NewDraft()
	assert.ErrorIs(t, d.SetPrice(-1), ErrNegativePrice)
	assert.Nil(t, d.Price)
	require.NoError(t, d.SetPrice(0))
	assert.Equal(t, 0.0, *d.Price)
	d.ClearPrice()
	assert.Nil(t, d.Price)

	assert.ErrorIs(t, d.SetGlassWithIce("Shaved"), ErrUnknownIce)
	require.NoError(t, d.SetGlassWithIce(IceCrushed))

	step := d.AddStep()
	assert.ErrorIs(t, d.SetLineUnit(step, 0, "GALLON"), ErrUnknownUnit)
	assert.ErrorIs(t, d.SetLineAmount(step, 4, 1), ErrLineNotFound)
	require.NoError(t, d.SetLineAmount(step, 0, 2))
	require.NoError(t, d.ClearLineAmount(step, 0))
	assert.Nil(t, d.Steps[step].Ingredients[0].Amount)
}

func TestClone(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.SetPrice(4))
	step := d.AddStep()
	require.NoError(t, d.SetLineAmount(step, 0, 3))
	require.NoError(t, d.AddTag("sour"))

	clone := d.Clone()
	require.NoError(t, d.SetLineAmount(step, 0, 9))
	require.NoError(t, d.SetPrice(5))
	require.NoError(t, d.SetStepMixing(step, false))
	d.Tags[0] = "changed"

	assert.Equal(t, 3.0, *clone.Steps[0].Ingredients[0].Amount)
	assert.Equal(t, 4.0, *clone.Price)
	assert.True(t, clone.Steps[0].IsMixing())
	assert.Equal(t, []string{"sour"}, clone.Tags)
}

func TestTags(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.AddTag("  Tiki "))
	assert.ErrorIs(t, d.AddTag("tiki"), ErrDuplicateTag)
	assert.ErrorIs(t, d.AddTag(" "), ErrEmptyTag)
	assert.ErrorIs(t, d.AddTag("a tag that is far too long"), ErrTagTooLong)
	assert.Equal(t, []string{"Tiki"}, d.Tags)

	d.RemoveTag("TIKI")
	assert.Empty(t, d.Tags)

	err := d.SetTags([]string{"sour", "", "Sour", "classic"})
	assert.ErrorIs(t, err, ErrEmptyTag)
	assert.Equal(t, []string{"sour", "classic"}, d.Tags)
}

var pixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
}

func TestImages(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.AttachImage("mojito.png", pixel))
	assert.Regexp(t, `^data:image/png;base64,`, d.Image)

	contentType, content, err := DecodeImage(d.Image)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, pixel, content)

	assert.ErrorIs(t, d.AttachImage("notes.txt", []byte("hello there")), ErrNotAnImage)
	assert.ErrorIs(t, d.AttachImage("empty.png", nil), ErrEmptyImage)
	_, _, err = DecodeImage("https://example.com/mojito.png")
	assert.ErrorIs(t, err, ErrNotDataURL)

	d.ClearImage()
	assert.Empty(t, d.Image)
}
