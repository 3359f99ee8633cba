package draft

import (
	"sort"
	"time"
)

// SessionRecord adalah satu baris sesi pada representasi kawat, baik yang
// dikirim ke server maupun yang diterima kembali saat membuka revisi.
type SessionRecord struct {
	Date           string `json:"date"`
	CourseName     string `json:"course_name"`
	InstructorName string `json:"instructor_name"`
	Slot1          bool   `json:"slot_1"`
	Slot2          bool   `json:"slot_2"`
	Slot3          bool   `json:"slot_3"`
}

// ServerRecord adalah pengajuan izin yang sudah tersimpan di server,
// dipakai untuk mengisi ulang formulir pada alur revisi.
type ServerRecord struct {
	ID               string          `json:"id"`
	LeaveType        string          `json:"leave_type"`
	LeaveDetail      string          `json:"leave_detail"`
	StartDate        string          `json:"start_date"`
	Description      string          `json:"description"`
	AttendanceWeight int             `json:"attendance_weight"`
	Sessions         []SessionRecord `json:"sessions"`
}

// NewSubmissionSessions meratakan draft untuk jalur pengajuan baru: satu
// record per hari dengan ketiga sesi ditandai true dan pasangan mata
// kuliah/dosen yang sama untuk seluruh pengajuan. Jalur ini mengabaikan
// pilihan per sesi pada grid; perilaku lama yang dipertahankan apa adanya,
// terpisah dari jalur revisi.
func NewSubmissionSessions(g ScheduleGrid, courseName, instructorName string) []SessionRecord {
	out := make([]SessionRecord, 0, len(g))
	for i := range g {
		out = append(out, SessionRecord{
			Date:           g[i].Date.Format(DateLayout),
			CourseName:     courseName,
			InstructorName: instructorName,
			Slot1:          true,
			Slot2:          true,
			Slot3:          true,
		})
	}
	return out
}

// RevisionSessions meratakan draft untuk jalur revisi: satu record per sesi
// terpilih, dengan tepat satu flag sesi bernilai true sesuai nomor sesinya.
func RevisionSessions(g ScheduleGrid) []SessionRecord {
	var out []SessionRecord
	for i := range g {
		for j := range g[i].Slots {
			s := g[i].Slots[j]
			if !s.Selected {
				continue
			}
			out = append(out, SessionRecord{
				Date:           g[i].Date.Format(DateLayout),
				CourseName:     s.CourseName,
				InstructorName: s.InstructorName,
				Slot1:          s.Number == 1,
				Slot2:          s.Number == 2,
				Slot3:          s.Number == 3,
			})
		}
	}
	return out
}

// FromServerRecord membangun kembali draft dari record server untuk alur
// revisi. Sesi dikelompokkan per tanggal; slot N ditandai terpilih jika flag
// slot N pada record bernilai true. Tanggal yang gagal diparse diganti hari
// ini; kebijakan best-effort, bukan error.
func FromServerRecord(rec ServerRecord) *Draft {
	byDate := make(map[string]*DayEntry)
	var order []string

	for _, s := range rec.Sessions {
		date := parseDateOrToday(s.Date)
		key := date.Format(DateLayout)
		entry, ok := byDate[key]
		if !ok {
			e := newDayEntry(date)
			entry = &e
			byDate[key] = entry
			order = append(order, key)
		}
		applySession(entry, s)
	}

	sort.Strings(order)
	grid := make(ScheduleGrid, 0, len(order))
	for _, key := range order {
		grid = append(grid, *byDate[key])
	}

	d := New()
	d.BeginLoading()
	d.LeaveType = rec.LeaveType
	d.LeaveDetail = rec.LeaveDetail
	d.Description = rec.Description
	if len(grid) > 0 {
		d.SetWindow(grid[0].Date, len(grid))
	} else {
		d.SetWindow(parseDateOrToday(rec.StartDate), 1)
	}
	d.Grid = grid
	if len(grid) == 0 {
		d.Grid = Regenerate(nil, d.StartDate, d.DurationDays)
	}
	// Bobot tersimpan dianggap isian manual agar tidak tertimpa usulan
	// otomatis begitu pengguna mengubah pilihan sesi; nol dibiarkan
	// auto-tracking, sesuai perilaku formulir lama.
	if rec.AttendanceWeight != 0 {
		d.Weight.SetManual(rec.AttendanceWeight)
	}
	d.FinishLoading()
	return d
}

func applySession(entry *DayEntry, s SessionRecord) {
	flags := [SlotsPerDay]bool{s.Slot1, s.Slot2, s.Slot3}
	for i, on := range flags {
		if !on {
			continue
		}
		entry.Slots[i].Selected = true
		entry.Slots[i].CourseName = s.CourseName
		entry.Slots[i].InstructorName = s.InstructorName
	}
}

func parseDateOrToday(v string) time.Time {
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return NormalizeDate(time.Now().UTC())
	}
	return NormalizeDate(t)
}
