package middleware

import (
	autherrors "go-satpam/internal/auth/errors"
	"go-satpam/internal/domain"
	"go-satpam/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CurrentActor membangun domain.Actor dari context yang sudah diisi
// AuthMiddleware. ok=false berarti request belum melewati autentikasi.
func CurrentActor(c *gin.Context) (domain.Actor, bool) {
	id, err := uuid.Parse(c.GetString("actor_id"))
	if err != nil {
		return domain.Actor{}, false
	}

	role, err := domain.ParseRole(c.GetString("actor_role"))
	if err != nil {
		return domain.Actor{}, false
	}

	return domain.Actor{
		ID:   id,
		Name: c.GetString("actor_name"),
		Role: role,
	}, true
}

func abortForbidden(c *gin.Context) {
	e := autherrors.ErrForbidden
	response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
	c.Abort()
}

// RequireSuperadmin menolak semua actor selain superadmin.
func RequireSuperadmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok || !actor.IsSuperadmin() {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

// RequireAdminPrivileges meloloskan superadmin dan admin.
func RequireAdminPrivileges() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok || !actor.HasAdminPrivileges() {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

// RequireGuard meloloskan hanya role guard; dipakai pada submit laporan.
func RequireGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok || !actor.IsGuard() {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}
