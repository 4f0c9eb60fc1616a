package report

import "io"

type SubmitReportRequest struct {
	AreaName        string   `form:"area_name" json:"area_name"`
	Description     string   `form:"description" json:"description"`
	Details         string   `form:"details" json:"details"`
	Latitude        *float64 `form:"latitude" json:"latitude"`
	Longitude       *float64 `form:"longitude" json:"longitude"`
	LocationAddress *string  `form:"location_address" json:"location_address"`
}

// EvidenceUpload adalah satu file bukti yang belum tersimpan; Reader dibaca
// sekali saat upload ke blob store.
type EvidenceUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending reviewed completed"`
}

// ListFilters adalah filter listing yang DIMINTA client. Sebelum menyentuh
// storage, filter ini harus melewati BuildScope yang memaksakan aturan
// kepemilikan; repository tidak menerima ListFilters mentah.
type ListFilters struct {
	OwnerID   string `json:"user_id,omitempty" form:"user_id"`
	StartDate string `json:"start_date,omitempty" form:"start_date"` // YYYY-MM-DD, inklusif
	EndDate   string `json:"end_date,omitempty" form:"end_date"`     // YYYY-MM-DD, inklusif
	Status    string `json:"status,omitempty" form:"status"`
	Search    string `json:"search,omitempty" form:"search"`
	Page      int    `json:"page,omitempty" form:"page"`
}

type AttachmentResponse struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

type ReportResponse struct {
	ID              string               `json:"id"`
	UserID          string               `json:"user_id"`
	ReporterName    string               `json:"reporter_name,omitempty"`
	AreaName        string               `json:"area_name"`
	Description     string               `json:"description"`
	Details         string               `json:"details"`
	Latitude        *float64             `json:"latitude,omitempty"`
	Longitude       *float64             `json:"longitude,omitempty"`
	LocationAddress *string              `json:"location_address,omitempty"`
	Attachments     []AttachmentResponse `json:"attachments"`
	Status          string               `json:"status"`
	ReportedAt      string               `json:"reported_at"`
	CreatedAt       string               `json:"created_at"`
}

// DeleteResult memisahkan nasib record dari nasib blob: kegagalan melepas
// blob tidak membatalkan penghapusan record, tapi tetap dilaporkan.
type DeleteResult struct {
	RecordDeleted bool     `json:"record_deleted"`
	CleanupErrors []string `json:"cleanup_errors,omitempty"`
}
