package bootstrap

import "context"

// AuditLog adalah satu kejadian operasional yang layak diingat di luar log
// aplikasi biasa (start/stop server, aksi administratif besar).
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
