package shift

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shift adalah jendela tugas harian; start/end disimpan sebagai jam "HH:MM"
// tanpa tanggal.
type Shift struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	StartTime   string    `gorm:"column:start_time;type:varchar(5);not null"`
	EndTime     string    `gorm:"column:end_time;type:varchar(5);not null"`
	Description *string   `gorm:"column:description;type:text"`
	IsActive    bool      `gorm:"column:is_active;default:true;index"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Shift) TableName() string {
	return "shifts"
}
