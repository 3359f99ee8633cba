package draft_test

import (
	"testing"
	"time"

	"go-silpa/internal/draft"

	"github.com/stretchr/testify/assert"
)

func TestNewSubmissionSessions_AllSlotsTrueUniformly(t *testing.T) {
	g := draft.Regenerate(nil, date("2025-01-01"), 3)
	// Jalur pengajuan baru mengabaikan pilihan per sesi.
	g.SetSlotSelection(date("2025-01-02"), 2, true)

	records := draft.NewSubmissionSessions(g, "Kalkulus", "Budi")

	assert.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, g[i].Date.Format("2006-01-02"), rec.Date)
		assert.Equal(t, "Kalkulus", rec.CourseName)
		assert.Equal(t, "Budi", rec.InstructorName)
		assert.True(t, rec.Slot1)
		assert.True(t, rec.Slot2)
		assert.True(t, rec.Slot3)
	}
}

func TestRevisionSessions_OneRecordPerSelectedSlot(t *testing.T) {
	g := draft.Regenerate(nil, date("2025-01-01"), 3)
	g.SetSlotSelection(date("2025-01-01"), 1, true)
	g.SetSlotFields(date("2025-01-01"), 1, strPtr("Kalkulus"), strPtr("Budi"))
	g.SetSlotSelection(date("2025-01-03"), 2, true)
	g.SetSlotFields(date("2025-01-03"), 2, strPtr("Kalkulus"), strPtr("Budi"))

	records := draft.RevisionSessions(g)

	assert.Len(t, records, 2)
	assert.Equal(t, "2025-01-01", records[0].Date)
	assert.True(t, records[0].Slot1)
	assert.False(t, records[0].Slot2)
	assert.False(t, records[0].Slot3)
	assert.Equal(t, "2025-01-03", records[1].Date)
	assert.False(t, records[1].Slot1)
	assert.True(t, records[1].Slot2)
	assert.False(t, records[1].Slot3)

	assert.Equal(t, 4, draft.SuggestedWeight(g))
}

func TestRoundTrip_RevisionFlattenThenDecode(t *testing.T) {
	g := draft.Regenerate(nil, date("2025-03-10"), 4)
	g.SetSlotSelection(date("2025-03-10"), 1, true)
	g.SetSlotFields(date("2025-03-10"), 1, strPtr("Basis Data"), strPtr("Sari"))
	g.SetSlotSelection(date("2025-03-10"), 3, true)
	g.SetSlotFields(date("2025-03-10"), 3, strPtr("Jaringan"), strPtr("Andi"))
	g.SetSlotSelection(date("2025-03-12"), 2, true)
	g.SetSlotFields(date("2025-03-12"), 2, strPtr("Basis Data"), strPtr("Sari"))

	rec := draft.ServerRecord{
		LeaveType:        "IMPORTANT_REASON",
		LeaveDetail:      "KELUARGA",
		StartDate:        "2025-03-10",
		Description:      "Acara keluarga",
		AttendanceWeight: 6,
		Sessions:         draft.RevisionSessions(g),
	}

	d := draft.FromServerRecord(rec)

	assert.Equal(t, "IMPORTANT_REASON", d.LeaveType)
	assert.Equal(t, "KELUARGA", d.LeaveDetail)
	// Hanya tanggal dengan sesi terpilih yang ikut diratakan; durasi turunan
	// mengikuti panjang grid hasil decode.
	assert.Equal(t, len(d.Grid), d.DurationDays)
	assert.Equal(t, 6, d.Weight.Value())
	assert.True(t, d.Weight.Manual())

	for i := range g {
		key := g[i].Date.Format("2006-01-02")
		var decoded *draft.DayEntry
		for j := range d.Grid {
			if d.Grid[j].Date.Format("2006-01-02") == key {
				decoded = &d.Grid[j]
				break
			}
		}
		for _, slot := range g[i].Slots {
			if !slot.Selected {
				continue
			}
			if assert.NotNil(t, decoded, "selected slots on %s must round-trip", key) {
				got := decoded.Slots[slot.Number-1]
				assert.True(t, got.Selected)
				assert.Equal(t, slot.CourseName, got.CourseName)
				assert.Equal(t, slot.InstructorName, got.InstructorName)
			}
		}
	}
}

func TestFromServerRecord_GroupsSessionsByDate(t *testing.T) {
	rec := draft.ServerRecord{
		StartDate: "2025-05-05",
		Sessions: []draft.SessionRecord{
			{Date: "2025-05-06", CourseName: "Kalkulus", InstructorName: "Budi", Slot2: true},
			{Date: "2025-05-05", CourseName: "Fisika", InstructorName: "Sari", Slot1: true},
			{Date: "2025-05-05", CourseName: "Kimia", InstructorName: "Andi", Slot3: true},
		},
	}

	d := draft.FromServerRecord(rec)

	assert.Len(t, d.Grid, 2)
	assert.Equal(t, "2025-05-05", d.Grid[0].Date.Format("2006-01-02"))
	assert.True(t, d.Grid[0].Slots[0].Selected)
	assert.Equal(t, "Fisika", d.Grid[0].Slots[0].CourseName)
	assert.True(t, d.Grid[0].Slots[2].Selected)
	assert.Equal(t, "Kimia", d.Grid[0].Slots[2].CourseName)
	assert.False(t, d.Grid[0].Slots[1].Selected)
	assert.True(t, d.Grid[1].Slots[1].Selected)
	assert.Equal(t, 2, d.DurationDays)
}

func TestFromServerRecord_MalformedDateFallsBackToToday(t *testing.T) {
	rec := draft.ServerRecord{
		Sessions: []draft.SessionRecord{
			{Date: "bukan-tanggal", CourseName: "Kalkulus", InstructorName: "Budi", Slot1: true},
		},
	}

	d := draft.FromServerRecord(rec)

	today := time.Now().UTC().Format("2006-01-02")
	assert.Len(t, d.Grid, 1)
	assert.Equal(t, today, d.Grid[0].Date.Format("2006-01-02"))
	assert.True(t, d.Grid[0].Slots[0].Selected)
}

func TestFromServerRecord_NoSessionsFallsBackToStartDate(t *testing.T) {
	rec := draft.ServerRecord{StartDate: "2025-07-01"}

	d := draft.FromServerRecord(rec)

	assert.Len(t, d.Grid, 1)
	assert.Equal(t, "2025-07-01", d.Grid[0].Date.Format("2006-01-02"))
	assert.Equal(t, 1, d.DurationDays)
	assert.Equal(t, 0, d.Grid.SelectedCount())
}
