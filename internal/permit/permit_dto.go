package permit

// CreatePermitRequest adalah field formulir pada multipart pengajuan baru.
// Berkas bukti dikirim sebagai file part terpisah dengan nama "attachments".
// Jalur baru memakai satu pasangan mata kuliah/dosen untuk seluruh rentang;
// ketiga sesi per hari otomatis ditandai.
type CreatePermitRequest struct {
	LeaveType        string `form:"leave_type" binding:"required,oneof=SICK INSTITUTIONAL_DISPENSATION IMPORTANT_REASON"`
	LeaveDetail      string `form:"leave_detail" binding:"required"`
	StartDate        string `form:"start_date" binding:"required"`
	DurationDays     int    `form:"duration_days" binding:"required,min=1"`
	Description      string `form:"description" binding:"required"`
	AttendanceWeight *int   `form:"attendance_weight"`
	CourseName       string `form:"course_name" binding:"required"`
	InstructorName   string `form:"instructor_name" binding:"required"`
}

// SessionInput adalah satu baris sesi pada payload revisi; jalur revisi
// mengirim tepat satu flag true per baris.
type SessionInput struct {
	Date           string `json:"date" binding:"required"`
	CourseName     string `json:"course_name"`
	InstructorName string `json:"instructor_name"`
	Slot1          bool   `json:"slot_1"`
	Slot2          bool   `json:"slot_2"`
	Slot3          bool   `json:"slot_3"`
}

// RevisePermitRequest adalah field formulir pada multipart revisi. Field
// "sessions" berisi JSON array SessionInput; lampiran wajib diunggah ulang.
type RevisePermitRequest struct {
	LeaveType        string         `form:"leave_type" binding:"required,oneof=SICK INSTITUTIONAL_DISPENSATION IMPORTANT_REASON"`
	LeaveDetail      string         `form:"leave_detail" binding:"required"`
	StartDate        string         `form:"start_date" binding:"required"`
	Description      string         `form:"description" binding:"required"`
	AttendanceWeight int            `form:"attendance_weight"`
	Sessions         []SessionInput `form:"-"`
}

type ReviewRequest struct {
	Note string `json:"note" binding:"required"`
}

type SessionResponse struct {
	Date           string `json:"date"`
	CourseName     string `json:"course_name"`
	InstructorName string `json:"instructor_name"`
	Slot1          bool   `json:"slot_1"`
	Slot2          bool   `json:"slot_2"`
	Slot3          bool   `json:"slot_3"`
}

type AttachmentResponse struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	URL         string `json:"url,omitempty"`
}

type PermitResponse struct {
	ID               string               `json:"id"`
	Reference        string               `json:"reference"`
	StudentID        string               `json:"student_id"`
	Unit             string               `json:"unit"`
	LeaveType        string               `json:"leave_type"`
	LeaveDetail      string               `json:"leave_detail"`
	StartDate        string               `json:"start_date"`
	EndDate          string               `json:"end_date"`
	TotalDays        int                  `json:"total_days"`
	Description      string               `json:"description"`
	AttendanceWeight int                  `json:"attendance_weight"`
	Status           string               `json:"status"`
	ReviewedBy       *string              `json:"reviewed_by,omitempty"`
	ReviewedAt       *string              `json:"reviewed_at,omitempty"`
	ReviewNote       *string              `json:"review_note,omitempty"`
	Sessions         []SessionResponse    `json:"sessions"`
	Attachments      []AttachmentResponse `json:"attachments"`
}

// RevisionSlotResponse adalah satu sesi pada grid formulir revisi.
type RevisionSlotResponse struct {
	SlotNumber     int    `json:"slot_number"`
	Label          string `json:"label"`
	Selected       bool   `json:"selected"`
	CourseName     string `json:"course_name"`
	InstructorName string `json:"instructor_name"`
}

type RevisionDayResponse struct {
	Date  string                 `json:"date"`
	Slots []RevisionSlotResponse `json:"slots"`
}

// RevisionDraftResponse adalah isi formulir revisi hasil decode record
// tersimpan; klien memakainya untuk mengisi ulang layar pengajuan.
type RevisionDraftResponse struct {
	ID               string                `json:"id"`
	LeaveType        string                `json:"leave_type"`
	LeaveDetail      string                `json:"leave_detail"`
	StartDate        string                `json:"start_date"`
	EndDate          string                `json:"end_date"`
	DurationDays     int                   `json:"duration_days"`
	Description      string                `json:"description"`
	AttendanceWeight int                   `json:"attendance_weight"`
	WeightManual     bool                  `json:"weight_manual"`
	Days             []RevisionDayResponse `json:"days"`
}
