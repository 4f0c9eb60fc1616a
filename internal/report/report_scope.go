package report

import (
	"strings"
	"time"

	"go-satpam/internal/domain"
	reporterrors "go-satpam/internal/report/errors"

	"github.com/google/uuid"
)

// ScopedFilters adalah hasil BuildScope: himpunan predicate yang sudah
// disegel. Field-nya unexported sehingga caller tidak bisa melonggarkan
// scope setelah dibangun; repository hanya menerima tipe ini.
type ScopedFilters struct {
	ownerID string
	start   *time.Time
	end     *time.Time
	status  string
	search  string
	page    int
}

func (f ScopedFilters) OwnerID() string { return f.ownerID }
func (f ScopedFilters) Status() string  { return f.status }
func (f ScopedFilters) Search() string  { return f.search }
func (f ScopedFilters) Page() int       { return f.page }

// Normalized mengembalikan filter efektif untuk di-echo ke client.
func (f ScopedFilters) Normalized() ListFilters {
	n := ListFilters{
		OwnerID: f.ownerID,
		Status:  f.status,
		Search:  f.search,
		Page:    f.page,
	}
	if f.start != nil {
		n.StartDate = f.start.Format("2006-01-02")
	}
	if f.end != nil {
		n.EndDate = f.end.Format("2006-01-02")
	}
	return n
}

// BuildScope menurunkan filter efektif dari role actor dan filter yang
// diminta. Urutan penting: pembatasan kepemilikan untuk guard diterapkan
// TERAKHIR dan menimpa filter owner apa pun yang diminta — guard tidak
// pernah bisa melihat laporan guard lain lewat parameter mana pun.
func BuildScope(actor domain.Actor, requested ListFilters) (ScopedFilters, error) {
	scoped := ScopedFilters{
		search: strings.TrimSpace(requested.Search),
		page:   requested.Page,
	}
	if scoped.page < 1 {
		scoped.page = 1
	}

	if s := strings.TrimSpace(requested.Status); s != "" {
		status, err := ParseStatus(s)
		if err != nil {
			return ScopedFilters{}, reporterrors.ErrInvalidStatus
		}
		scoped.status = status
	}

	if d := strings.TrimSpace(requested.StartDate); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			return ScopedFilters{}, reporterrors.ErrInvalidStartDate
		}
		scoped.start = &t
	}
	if d := strings.TrimSpace(requested.EndDate); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			return ScopedFilters{}, reporterrors.ErrInvalidEndDate
		}
		scoped.end = &t
	}

	if owner := strings.TrimSpace(requested.OwnerID); owner != "" && actor.HasAdminPrivileges() {
		if _, err := uuid.Parse(owner); err != nil {
			return ScopedFilters{}, reporterrors.ErrInvalidOwnerFilter
		}
		scoped.ownerID = owner
	}

	// Predicate final, tidak bisa dibatalkan filter lain
	if actor.IsGuard() {
		scoped.ownerID = actor.ID.String()
	}

	return scoped, nil
}

// CanAccess adalah aturan akses langsung per-record: pemilik atau actor
// ber-privilege admin.
func CanAccess(actor domain.Actor, r *AreaReport) bool {
	return actor.HasAdminPrivileges() || r.UserID == actor.ID
}
