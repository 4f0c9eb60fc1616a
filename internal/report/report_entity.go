package report

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusReviewed  = "reviewed"
	StatusCompleted = "completed"
)

// ParseStatus memvalidasi status laporan; hanya tiga status yang dikenal.
func ParseStatus(s string) (string, error) {
	switch s {
	case StatusPending, StatusReviewed, StatusCompleted:
		return s, nil
	}
	return "", errors.New("unknown report status: " + s)
}

// Attachment adalah metadata satu file bukti; Path adalah alamat opaque di
// blob store.
type Attachment struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// Attachments disimpan sebagai satu kolom jsonb.
type Attachments []Attachment

func (a Attachments) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Attachments) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return errors.New("attachments: unsupported scan source")
}

type AreaReport struct {
	ID              uuid.UUID   `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID   `gorm:"column:user_id;type:uuid;not null;index"`
	AreaName        string      `gorm:"column:area_name;type:varchar(255);not null"`
	Description     string      `gorm:"column:description;type:text;not null"`
	Details         string      `gorm:"column:details;type:text;not null"`
	Latitude        *float64    `gorm:"column:latitude;type:decimal(10,8)"`
	Longitude       *float64    `gorm:"column:longitude;type:decimal(11,8)"`
	LocationAddress *string     `gorm:"column:location_address;type:text"`
	Attachments     Attachments `gorm:"column:attachments;type:jsonb"`
	Status          string      `gorm:"column:status;type:varchar(20);not null;default:pending;index"`
	ReportedAt      time.Time   `gorm:"column:reported_at;not null;index"` // Diisi saat submit, tidak pernah berubah

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Reporter *ReporterRef `gorm:"foreignKey:UserID;references:ID"`
}

func (AreaReport) TableName() string {
	return "area_reports"
}

// ReporterRef adalah join minimal ke tabel users untuk menampilkan nama pelapor.
type ReporterRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (ReporterRef) TableName() string {
	return "users"
}
