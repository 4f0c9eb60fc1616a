package events

import "time"

const ReportLifecycleTopic = "satpam.report.lifecycle.v1"

const (
	EventReportSubmitted     = "report.submitted"
	EventReportStatusChanged = "report.status_changed"
)

type ReportSubmittedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	ReportID   string    `json:"report_id"`
	UserID     string    `json:"user_id"`
	AreaName   string    `json:"area_name"`
	ReportedAt time.Time `json:"reported_at"`
}

type ReportStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	ReportID   string    `json:"report_id"`
	OwnerID    string    `json:"owner_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	ChangedBy  string    `json:"changed_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
