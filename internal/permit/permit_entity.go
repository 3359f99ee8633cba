package permit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Permit adalah satu pengajuan izin perkuliahan beserta sesi dan lampirannya.
type Permit struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_permits_student_dates"`
	Unit      string    `gorm:"type:varchar(100);not null;index:idx_permits_unit_status"`
	Reference string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_permits_reference"`

	LeaveType   string `gorm:"type:varchar(40);not null"`
	LeaveDetail string `gorm:"type:varchar(100);not null"`

	StartDate        time.Time `gorm:"type:date;not null;index:idx_permits_student_dates"`
	EndDate          time.Time `gorm:"type:date;not null;index:idx_permits_student_dates"`
	TotalDays        int       `gorm:"type:int;not null;default:1"`
	Description      string    `gorm:"type:text;not null"`
	AttendanceWeight int       `gorm:"type:int;not null;default:0"`

	Status     string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_permits_unit_status"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt *time.Time
	ReviewNote *string `gorm:"type:text"`

	Sessions    []PermitSession    `gorm:"foreignKey:PermitID;constraint:OnDelete:CASCADE"`
	Attachments []PermitAttachment `gorm:"foreignKey:PermitID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_permits_deleted_at"`
}

// PermitSession adalah satu baris sesi sebagaimana dikirim klien: jalur
// pengajuan baru menyimpan satu baris per hari dengan ketiga flag true,
// jalur revisi satu baris per sesi terpilih dengan tepat satu flag true.
type PermitSession struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PermitID uuid.UUID `gorm:"type:uuid;not null;index:idx_permit_sessions_permit"`

	Date           time.Time `gorm:"type:date;not null"`
	CourseName     string    `gorm:"type:varchar(150);not null"`
	InstructorName string    `gorm:"type:varchar(150);not null"`
	Slot1          bool      `gorm:"not null;default:false"`
	Slot2          bool      `gorm:"not null;default:false"`
	Slot3          bool      `gorm:"not null;default:false"`

	CreatedAt time.Time
}

// PermitAttachment adalah metadata berkas bukti; isi berkas disimpan di
// object storage dengan ObjectKey sebagai alamatnya.
type PermitAttachment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PermitID uuid.UUID `gorm:"type:uuid;not null;index:idx_permit_attachments_permit"`

	ObjectKey   string `gorm:"type:varchar(255);not null"`
	Filename    string `gorm:"type:varchar(255);not null"`
	ContentType string `gorm:"type:varchar(100)"`
	Size        int64  `gorm:"type:bigint;not null;default:0"`

	CreatedAt time.Time
}
