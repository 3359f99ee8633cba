package draft_test

import (
	"testing"
	"time"

	"go-silpa/internal/draft"

	"github.com/stretchr/testify/assert"
)

func date(v string) time.Time {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(v string) *string { return &v }

func TestRegenerate_EmptyGrid(t *testing.T) {
	g := draft.Regenerate(nil, date("2025-01-01"), 3)

	assert.Len(t, g, 3)
	assert.Equal(t, "2025-01-01", g[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-01-02", g[1].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-01-03", g[2].Date.Format("2006-01-02"))

	for _, day := range g {
		assert.Len(t, day.Slots[:], draft.SlotsPerDay)
		for i, slot := range day.Slots {
			assert.Equal(t, i+1, slot.Number)
			assert.False(t, slot.Selected)
			assert.Empty(t, slot.CourseName)
			assert.Empty(t, slot.InstructorName)
		}
	}
}

func TestRegenerate_ClampsDurationToOneDay(t *testing.T) {
	g := draft.Regenerate(nil, date("2025-01-01"), 0)
	assert.Len(t, g, 1)

	g = draft.Regenerate(nil, date("2025-01-01"), -5)
	assert.Len(t, g, 1)
}

func TestRegenerate_Idempotent(t *testing.T) {
	start := date("2025-02-10")

	g := draft.Regenerate(nil, start, 4)
	g.SetSlotSelection(date("2025-02-11"), 2, true)
	g.SetSlotFields(date("2025-02-11"), 2, strPtr("Kalkulus"), strPtr("Budi"))

	once := draft.Regenerate(g, start, 4)
	twice := draft.Regenerate(once, start, 4)
	assert.Equal(t, once, twice)
}

func TestRegenerate_CarryOver(t *testing.T) {
	g := draft.Regenerate(nil, date("2025-01-01"), 3)
	g.SetSlotSelection(date("2025-01-02"), 1, true)
	g.SetSlotFields(date("2025-01-02"), 1, strPtr("Struktur Data"), strPtr("Sari"))

	t.Run("surviving date keeps edits", func(t *testing.T) {
		wider := draft.Regenerate(g, date("2025-01-01"), 5)
		assert.Len(t, wider, 5)
		assert.True(t, wider[1].Slots[0].Selected)
		assert.Equal(t, "Struktur Data", wider[1].Slots[0].CourseName)
		assert.Equal(t, "Sari", wider[1].Slots[0].InstructorName)
	})

	t.Run("new dates start blank", func(t *testing.T) {
		wider := draft.Regenerate(g, date("2025-01-01"), 5)
		for _, day := range wider[2:] {
			for _, slot := range day.Slots {
				assert.False(t, slot.Selected)
				assert.Empty(t, slot.CourseName)
			}
		}
	})

	t.Run("dates outside new range are dropped", func(t *testing.T) {
		shifted := draft.Regenerate(g, date("2025-01-03"), 2)
		assert.Len(t, shifted, 2)
		assert.Equal(t, "2025-01-03", shifted[0].Date.Format("2006-01-02"))
		for _, day := range shifted {
			for _, slot := range day.Slots {
				assert.False(t, slot.Selected)
			}
		}
	})
}

func TestSetSlotSelection_UnknownTargetsAreNoOps(t *testing.T) {
	g := draft.Regenerate(nil, date("2025-01-01"), 2)

	g.SetSlotSelection(date("2030-12-31"), 1, true)
	g.SetSlotSelection(date("2025-01-01"), 0, true)
	g.SetSlotSelection(date("2025-01-01"), 4, true)

	assert.Equal(t, 0, g.SelectedCount())
}

func TestSetSlotFields_DoesNotTouchSelection(t *testing.T) {
	g := draft.Regenerate(nil, date("2025-01-01"), 1)
	g.SetSlotFields(date("2025-01-01"), 3, strPtr("Fisika Dasar"), nil)

	assert.False(t, g[0].Slots[2].Selected)
	assert.Equal(t, "Fisika Dasar", g[0].Slots[2].CourseName)
	assert.Empty(t, g[0].Slots[2].InstructorName)
}

func TestSuggestedWeight_ScalesLinearly(t *testing.T) {
	g := draft.Regenerate(nil, date("2025-01-01"), 4)

	g.SetSlotSelection(date("2025-01-01"), 1, true)
	g.SetSlotSelection(date("2025-01-02"), 2, true)
	assert.Equal(t, 4, draft.SuggestedWeight(g))

	g.SetSlotSelection(date("2025-01-03"), 3, true)
	g.SetSlotSelection(date("2025-01-04"), 1, true)
	assert.Equal(t, 8, draft.SuggestedWeight(g))
}
