package draft

import (
	"strings"
	"time"
)

// WeightField adalah bobot kehadiran dengan dua mode eksplisit: selama masih
// auto, nilai mengikuti usulan dari grid; begitu pengguna mengisi manual
// (termasuk manual 0), usulan tidak pernah menimpanya lagi.
type WeightField struct {
	manual bool
	value  int
}

func (w *WeightField) SetManual(v int) {
	w.manual = true
	w.value = v
}

func (w WeightField) Value() int { return w.value }

func (w WeightField) Manual() bool { return w.manual }

func (w *WeightField) suggest(v int) {
	if !w.manual {
		w.value = v
	}
}

// Draft adalah keadaan formulir pengajuan izin yang sedang diedit.
// Draft dimiliki eksklusif oleh satu sesi pengeditan; tidak ada mutasi
// bersamaan.
type Draft struct {
	LeaveType    string
	LeaveDetail  string
	StartDate    time.Time
	DurationDays int
	Description  string
	Weight       WeightField
	Grid         ScheduleGrid
	Attachments  []string

	// loading menahan regenerasi grid selama draft masih diisi dari data
	// server, agar grid hasil decode tidak tertimpa grid kosong.
	loading bool
}

// New membuat draft kosong untuk pengajuan baru.
func New() *Draft {
	return &Draft{DurationDays: 1}
}

func (d *Draft) BeginLoading() { d.loading = true }

func (d *Draft) FinishLoading() { d.loading = false }

// SetWindow mengubah tanggal mulai dan durasi, lalu meregenerasi grid.
// Selama loading, hanya field yang disimpan; regenerasi ditunda.
func (d *Draft) SetWindow(start time.Time, days int) {
	if days < 1 {
		days = 1
	}
	d.StartDate = NormalizeDate(start)
	d.DurationDays = days
	if d.loading {
		return
	}
	d.Grid = Regenerate(d.Grid, d.StartDate, d.DurationDays)
}

// EndDate adalah tanggal akhir turunan: start + durasi - 1.
func (d *Draft) EndDate() time.Time {
	return NormalizeDate(d.StartDate).AddDate(0, 0, d.DurationDays-1)
}

// SyncSuggestedWeight menulis usulan bobot ke field bobot. Tidak berpengaruh
// jika pengguna sudah mengisi bobot secara manual.
func (d *Draft) SyncSuggestedWeight() {
	d.Weight.suggest(SuggestedWeight(d.Grid))
}

// Kunci field untuk hasil validasi; pemanggil memetakan tiap kunci ke
// indikator error di layar.
const (
	FieldDuration    = "duration_days"
	FieldDescription = "description"
	FieldWeight      = "attendance_weight"
	FieldAttachments = "attachments"
	FieldSchedule    = "schedule"
	FieldSelection   = "selection"
)

// ValidationResult mengumpulkan seluruh kegagalan validasi sekaligus,
// bukan berhenti di kegagalan pertama.
type ValidationResult struct {
	Failures map[string]string
}

func (r ValidationResult) Valid() bool { return len(r.Failures) == 0 }

func (r *ValidationResult) add(field, message string) {
	if r.Failures == nil {
		r.Failures = map[string]string{}
	}
	r.Failures[field] = message
}

// Validate memeriksa kesiapan draft untuk dikirim. Draft tidak pernah
// dimutasi di sini.
func Validate(d *Draft) ValidationResult {
	var res ValidationResult

	if d.DurationDays < 1 {
		res.add(FieldDuration, "Durasi izin minimal 1 hari")
	}
	if strings.TrimSpace(d.Description) == "" {
		res.add(FieldDescription, "Keterangan wajib diisi")
	}
	if d.Weight.Value() < 0 {
		res.add(FieldWeight, "Bobot kehadiran tidak boleh negatif")
	}
	if len(d.Attachments) == 0 {
		res.add(FieldAttachments, "Lampiran bukti wajib diunggah")
	}

	incomplete := false
	for i := range d.Grid {
		for j := range d.Grid[i].Slots {
			s := d.Grid[i].Slots[j]
			if !s.Selected {
				continue
			}
			if strings.TrimSpace(s.CourseName) == "" || strings.TrimSpace(s.InstructorName) == "" {
				incomplete = true
			}
		}
	}
	if incomplete {
		res.add(FieldSchedule, "Mata kuliah dan dosen wajib diisi untuk setiap sesi terpilih")
	}
	if d.Grid.SelectedCount() == 0 {
		res.add(FieldSelection, "Pilih minimal satu sesi perkuliahan")
	}

	return res
}
