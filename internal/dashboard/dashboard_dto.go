package dashboard

// StatsResponse berbentuk sesuai role: guard hanya melihat agregat laporan
// miliknya sendiri, admin melihat agregat operasional, superadmin plus
// komposisi akun.
type StatsResponse struct {
	// Superadmin
	TotalUsers  *int64 `json:"total_users,omitempty"`
	TotalAdmins *int64 `json:"total_admins,omitempty"`

	// Admin dan superadmin
	TotalGuards      *int64 `json:"total_guards,omitempty"`
	TotalShifts      *int64 `json:"total_shifts,omitempty"`
	TotalReports     *int64 `json:"total_reports,omitempty"`
	PendingReports   *int64 `json:"pending_reports,omitempty"`
	ReviewedReports  *int64 `json:"reviewed_reports,omitempty"`
	CompletedReports *int64 `json:"completed_reports,omitempty"`
	ReportsToday     *int64 `json:"reports_today,omitempty"`

	// Guard
	MyReports   *int64 `json:"my_reports,omitempty"`
	MyPending   *int64 `json:"my_pending,omitempty"`
	MyReviewed  *int64 `json:"my_reviewed,omitempty"`
	MyCompleted *int64 `json:"my_completed,omitempty"`

	// Laporan terbaru: milik sendiri untuk guard, lintas pelapor untuk
	// admin/superadmin. Superadmin juga melihat akun terbaru.
	RecentReports []RecentReport `json:"recent_reports,omitempty"`
	RecentUsers   []RecentUser   `json:"recent_users,omitempty"`
}

type RecentReport struct {
	ID           string `json:"id"`
	AreaName     string `json:"area_name"`
	Status       string `json:"status"`
	ReporterName string `json:"reporter_name,omitempty"`
	ReportedAt   string `json:"reported_at"`
}

type RecentUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}
