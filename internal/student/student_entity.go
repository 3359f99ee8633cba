package student

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	NIM          string    `gorm:"column:nim;type:varchar(20);uniqueIndex:uq_students_nim"`
	FullName     string
	Email        string `gorm:"uniqueIndex:uq_students_email"`
	StudyProgram string `gorm:"type:varchar(100)"`
	Semester     int    `gorm:"type:int;default:1"`
	Unit         string `gorm:"type:varchar(50);index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Student) TableName() string {
	return "students"
}
