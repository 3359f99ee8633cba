package draft

import "time"

const (
	// SlotsPerDay adalah jumlah sesi tetap dalam satu hari perkuliahan.
	SlotsPerDay = 3

	// Bobot kehadiran per sesi yang dipilih.
	weightPerSlot = 2

	DateLayout = "2006-01-02"
)

var slotLabels = [SlotsPerDay]string{
	"Sesi 1 (07:30)",
	"Sesi 2 (10:15)",
	"Sesi 3 (13:00)",
}

// SessionSlot adalah satu sesi perkuliahan dalam satu hari.
// CourseName dan InstructorName wajib terisi hanya jika Selected = true;
// aturan itu diperiksa saat validasi, bukan pada setiap mutasi.
type SessionSlot struct {
	Number         int
	Label          string
	Selected       bool
	CourseName     string
	InstructorName string
}

// DayEntry adalah satu tanggal kalender dalam rentang izin.
// Slots selalu berisi tepat 3 sesi, urut sesuai nomor sesi.
type DayEntry struct {
	Date  time.Time
	Slots [SlotsPerDay]SessionSlot
}

func newDayEntry(date time.Time) DayEntry {
	e := DayEntry{Date: date}
	for i := 0; i < SlotsPerDay; i++ {
		e.Slots[i] = SessionSlot{
			Number: i + 1,
			Label:  slotLabels[i],
		}
	}
	return e
}

// ScheduleGrid adalah urutan DayEntry dengan tanggal berurutan naik,
// satu entri per hari kalender dalam rentang izin.
type ScheduleGrid []DayEntry

// NormalizeDate membuang komponen waktu sehingga dua tanggal pada hari
// yang sama selalu identik sebagai kunci grid.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Regenerate menghasilkan grid baru untuk rentang [start, start+days-1].
// Entri lama dengan tanggal yang masih ada dalam rentang dibawa apa adanya
// (pilihan sesi dan isian pengguna tidak hilang); tanggal di luar rentang
// dibuang; tanggal baru dibuat kosong. Durasi di bawah 1 dianggap 1 hari.
func Regenerate(old ScheduleGrid, start time.Time, days int) ScheduleGrid {
	if days < 1 {
		days = 1
	}
	start = NormalizeDate(start)

	existing := make(map[string]DayEntry, len(old))
	for _, e := range old {
		existing[e.Date.Format(DateLayout)] = e
	}

	out := make(ScheduleGrid, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		if e, ok := existing[date.Format(DateLayout)]; ok {
			out = append(out, e)
			continue
		}
		out = append(out, newDayEntry(date))
	}
	return out
}

// SetSlotSelection mengubah status terpilih sesi pada tanggal tertentu.
// Tanggal atau nomor sesi yang tidak dikenal diabaikan tanpa error.
func (g ScheduleGrid) SetSlotSelection(date time.Time, slotNumber int, selected bool) {
	if i, j, ok := g.locate(date, slotNumber); ok {
		g[i].Slots[j].Selected = selected
	}
}

// SetSlotFields memperbarui nama mata kuliah dan/atau nama dosen pada satu
// sesi. Argumen nil berarti field tersebut tidak diubah. Status terpilih
// tidak pernah berubah di sini.
func (g ScheduleGrid) SetSlotFields(date time.Time, slotNumber int, courseName, instructorName *string) {
	i, j, ok := g.locate(date, slotNumber)
	if !ok {
		return
	}
	if courseName != nil {
		g[i].Slots[j].CourseName = *courseName
	}
	if instructorName != nil {
		g[i].Slots[j].InstructorName = *instructorName
	}
}

func (g ScheduleGrid) locate(date time.Time, slotNumber int) (int, int, bool) {
	if slotNumber < 1 || slotNumber > SlotsPerDay {
		return 0, 0, false
	}
	key := NormalizeDate(date).Format(DateLayout)
	for i := range g {
		if g[i].Date.Format(DateLayout) == key {
			return i, slotNumber - 1, true
		}
	}
	return 0, 0, false
}

// SelectedCount menghitung total sesi terpilih di seluruh grid.
func (g ScheduleGrid) SelectedCount() int {
	n := 0
	for i := range g {
		for j := range g[i].Slots {
			if g[i].Slots[j].Selected {
				n++
			}
		}
	}
	return n
}

// SuggestedWeight menghitung usulan bobot kehadiran: jumlah sesi terpilih
// dikali bobot per sesi.
func SuggestedWeight(g ScheduleGrid) int {
	return g.SelectedCount() * weightPerSlot
}
