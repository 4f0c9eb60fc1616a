package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"go-satpam/internal/domain"
	"go-satpam/internal/report"
	"go-satpam/internal/user"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	statsKeyPrefix = "dashboard:stats:"
	statsCacheTTL  = 60 * time.Second
	recentLimit    = 5
)

func statsCacheKey(actor domain.Actor) string {
	// Guard punya cache per-user karena angkanya milik dia sendiri; admin
	// dan superadmin berbagi satu entry per role.
	if actor.IsGuard() {
		return statsKeyPrefix + "guard:" + actor.ID.String()
	}
	return statsKeyPrefix + string(actor.Role)
}

// InvalidateStats membuang entry cache yang tersentuh satu perubahan laporan:
// entry milik guard pelapor dan entry bersama admin/superadmin.
func InvalidateStats(ctx context.Context, rdb *redis.Client, ownerID string) error {
	keys := []string{
		statsKeyPrefix + string(domain.RoleAdmin),
		statsKeyPrefix + string(domain.RoleSuperadmin),
	}
	if ownerID != "" {
		keys = append(keys, statsKeyPrefix+"guard:"+ownerID)
	}
	return rdb.Del(ctx, keys...).Err()
}

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	Stats(ctx context.Context, actor domain.Actor) (StatsResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Stats(ctx context.Context, actor domain.Actor) (StatsResponse, error) {
	cacheKey := statsCacheKey(actor)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp StatsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.buildStats(ctx, actor)
		if err != nil {
			return StatsResponse{}, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, statsCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("dashboard stats failed",
			zap.String("actor_id", actor.ID.String()),
			zap.String("role", string(actor.Role)),
			zap.Error(err),
		)
		return StatsResponse{}, err
	}

	return v.(StatsResponse), nil
}

func (s *service) buildStats(ctx context.Context, actor domain.Actor) (StatsResponse, error) {
	if actor.IsGuard() {
		return s.buildGuardStats(ctx, actor.ID.String())
	}
	return s.buildAdminStats(ctx, actor)
}

func (s *service) buildGuardStats(ctx context.Context, ownerID string) (StatsResponse, error) {
	total, err := s.repo.CountReportsByOwner(ctx, ownerID)
	if err != nil {
		return StatsResponse{}, err
	}
	pending, err := s.repo.CountReportsByOwnerAndStatus(ctx, ownerID, report.StatusPending)
	if err != nil {
		return StatsResponse{}, err
	}
	reviewed, err := s.repo.CountReportsByOwnerAndStatus(ctx, ownerID, report.StatusReviewed)
	if err != nil {
		return StatsResponse{}, err
	}
	completed, err := s.repo.CountReportsByOwnerAndStatus(ctx, ownerID, report.StatusCompleted)
	if err != nil {
		return StatsResponse{}, err
	}

	recent, err := s.repo.RecentReports(ctx, ownerID, recentLimit)
	if err != nil {
		return StatsResponse{}, err
	}

	return StatsResponse{
		MyReports:     &total,
		MyPending:     &pending,
		MyReviewed:    &reviewed,
		MyCompleted:   &completed,
		RecentReports: mapRecentReports(recent),
	}, nil
}

func (s *service) buildAdminStats(ctx context.Context, actor domain.Actor) (StatsResponse, error) {
	guards, err := s.repo.CountUsersByRole(ctx, string(domain.RoleGuard))
	if err != nil {
		return StatsResponse{}, err
	}
	shifts, err := s.repo.CountShifts(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	reports, err := s.repo.CountReports(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	pending, err := s.repo.CountReportsByStatus(ctx, report.StatusPending)
	if err != nil {
		return StatsResponse{}, err
	}
	reviewed, err := s.repo.CountReportsByStatus(ctx, report.StatusReviewed)
	if err != nil {
		return StatsResponse{}, err
	}
	completed, err := s.repo.CountReportsByStatus(ctx, report.StatusCompleted)
	if err != nil {
		return StatsResponse{}, err
	}

	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	today, err := s.repo.CountReportsSince(ctx, startOfDay)
	if err != nil {
		return StatsResponse{}, err
	}

	recent, err := s.repo.RecentReports(ctx, "", recentLimit)
	if err != nil {
		return StatsResponse{}, err
	}

	resp := StatsResponse{
		TotalGuards:      &guards,
		TotalShifts:      &shifts,
		TotalReports:     &reports,
		PendingReports:   &pending,
		ReviewedReports:  &reviewed,
		CompletedReports: &completed,
		ReportsToday:     &today,
		RecentReports:    mapRecentReports(recent),
	}

	if actor.IsSuperadmin() {
		users, err := s.repo.CountUsers(ctx)
		if err != nil {
			return StatsResponse{}, err
		}
		admins, err := s.repo.CountUsersByRole(ctx, string(domain.RoleAdmin))
		if err != nil {
			return StatsResponse{}, err
		}
		newest, err := s.repo.RecentUsers(ctx, recentLimit)
		if err != nil {
			return StatsResponse{}, err
		}
		resp.TotalUsers = &users
		resp.TotalAdmins = &admins
		resp.RecentUsers = mapRecentUsers(newest)
	}

	return resp, nil
}

func mapRecentReports(reports []report.AreaReport) []RecentReport {
	out := make([]RecentReport, len(reports))
	for i, r := range reports {
		item := RecentReport{
			ID:         r.ID.String(),
			AreaName:   r.AreaName,
			Status:     r.Status,
			ReportedAt: r.ReportedAt.Format(time.RFC3339),
		}
		if r.Reporter != nil {
			item.ReporterName = r.Reporter.Name
		}
		out[i] = item
	}
	return out
}

func mapRecentUsers(users []user.User) []RecentUser {
	out := make([]RecentUser, len(users))
	for i, u := range users {
		out[i] = RecentUser{
			ID:        u.ID.String(),
			Name:      u.Name,
			Role:      u.Role,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		}
	}
	return out
}
