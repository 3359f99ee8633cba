package draft_test

import (
	"testing"

	"go-silpa/internal/draft"

	"github.com/stretchr/testify/assert"
)

func buildDraft() *draft.Draft {
	d := draft.New()
	d.LeaveType = "SICK"
	d.LeaveDetail = "RAWAT_JALAN"
	d.Description = "Opname di RS"
	d.Attachments = []string{"surat-dokter.pdf"}
	d.SetWindow(date("2025-01-01"), 3)
	return d
}

func TestSetWindow_RegeneratesGrid(t *testing.T) {
	d := buildDraft()
	assert.Len(t, d.Grid, 3)

	d.Grid.SetSlotSelection(date("2025-01-02"), 1, true)
	d.SetWindow(date("2025-01-02"), 2)

	assert.Len(t, d.Grid, 2)
	assert.True(t, d.Grid[0].Slots[0].Selected)
	assert.Equal(t, "2025-01-03", d.EndDate().Format("2006-01-02"))
}

func TestSetWindow_SuppressedWhileLoading(t *testing.T) {
	d := buildDraft()
	d.Grid.SetSlotSelection(date("2025-01-01"), 1, true)

	d.BeginLoading()
	d.SetWindow(date("2025-06-01"), 5)

	// Grid hasil decode tidak boleh tertimpa selama loading.
	assert.Len(t, d.Grid, 3)
	assert.True(t, d.Grid[0].Slots[0].Selected)
	assert.Equal(t, 5, d.DurationDays)

	d.FinishLoading()
	d.SetWindow(date("2025-06-01"), 5)
	assert.Len(t, d.Grid, 5)
}

func TestSyncSuggestedWeight(t *testing.T) {
	t.Run("tracks grid while auto", func(t *testing.T) {
		d := buildDraft()
		d.Grid.SetSlotSelection(date("2025-01-01"), 1, true)
		d.SyncSuggestedWeight()
		assert.Equal(t, 2, d.Weight.Value())

		d.Grid.SetSlotSelection(date("2025-01-02"), 2, true)
		d.SyncSuggestedWeight()
		assert.Equal(t, 4, d.Weight.Value())
	})

	t.Run("manual edit stops auto tracking", func(t *testing.T) {
		d := buildDraft()
		d.Grid.SetSlotSelection(date("2025-01-01"), 1, true)
		d.Weight.SetManual(10)

		d.Grid.SetSlotSelection(date("2025-01-02"), 2, true)
		d.SyncSuggestedWeight()
		assert.Equal(t, 10, d.Weight.Value())
	})

	t.Run("manual zero sticks", func(t *testing.T) {
		d := buildDraft()
		d.Weight.SetManual(0)
		d.Grid.SetSlotSelection(date("2025-01-01"), 1, true)
		d.SyncSuggestedWeight()
		assert.Equal(t, 0, d.Weight.Value())
		assert.True(t, d.Weight.Manual())
	})
}

func TestValidate(t *testing.T) {
	t.Run("accepts complete draft", func(t *testing.T) {
		d := buildDraft()
		d.Grid.SetSlotSelection(date("2025-01-01"), 1, true)
		d.Grid.SetSlotFields(date("2025-01-01"), 1, strPtr("Kalkulus"), strPtr("Budi"))

		res := draft.Validate(d)
		assert.True(t, res.Valid())
	})

	t.Run("rejects selected slot without course", func(t *testing.T) {
		d := buildDraft()
		d.Grid.SetSlotSelection(date("2025-01-01"), 1, true)
		d.Grid.SetSlotFields(date("2025-01-01"), 1, nil, strPtr("Budi"))

		res := draft.Validate(d)
		assert.False(t, res.Valid())
		assert.Contains(t, res.Failures, draft.FieldSchedule)

		d.Grid.SetSlotFields(date("2025-01-01"), 1, strPtr("Kalkulus"), nil)
		res = draft.Validate(d)
		assert.True(t, res.Valid())
	})

	t.Run("rejects grid with nothing selected", func(t *testing.T) {
		d := buildDraft()
		res := draft.Validate(d)
		assert.False(t, res.Valid())
		assert.Contains(t, res.Failures, draft.FieldSelection)
	})

	t.Run("accumulates every failure", func(t *testing.T) {
		d := draft.New()
		d.DurationDays = 0
		d.Description = "   "

		res := draft.Validate(d)
		assert.Contains(t, res.Failures, draft.FieldDuration)
		assert.Contains(t, res.Failures, draft.FieldDescription)
		assert.Contains(t, res.Failures, draft.FieldAttachments)
		assert.Contains(t, res.Failures, draft.FieldSelection)
	})

	t.Run("never mutates the draft", func(t *testing.T) {
		d := buildDraft()
		before := *d
		_ = draft.Validate(d)
		assert.Equal(t, before.DurationDays, d.DurationDays)
		assert.Equal(t, before.Weight, d.Weight)
		assert.Equal(t, before.Grid, d.Grid)
	})
}
