package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentID uuid.UUID  `gorm:"type:uuid;not null;index"`
	PermitID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_notifications_permit_status"`
	Status    string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_notifications_permit_status"`
	Title     string     `gorm:"type:varchar(255);not null"`
	Body      string     `gorm:"type:text"`
	ReadAt    *time.Time `gorm:"type:timestamptz"`
	CreatedAt time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
