package bootstrap

import "context"

// AuditLog adalah satu kejadian penting yang dicatat terpisah dari log
// aplikasi biasa (server hidup/mati, keputusan izin).
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
