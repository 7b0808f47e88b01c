package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// Envelope is what we store with every event.
// Backend-trustable header fields only.
type Envelope struct {
	SessionID    string
	Platform     string
	AppVersion   string
	DeviceLocale string
}

// FromRequest extracts event envelope fields from request headers.
func FromRequest(r *http.Request) Envelope {
	platform := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Platform")))
	switch platform {
	case "ios", "android", "web":
	default:
		platform = "unknown"
	}

	locale := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if locale == "" {
		locale = strings.TrimSpace(r.Header.Get("X-Device-Locale"))
	}

	return Envelope{
		SessionID:    strings.TrimSpace(r.Header.Get("X-Session-Id")),
		Platform:     platform,
		AppVersion:   strings.TrimSpace(r.Header.Get("X-App-Version")),
		DeviceLocale: locale,
	}
}

// SourceEventKeyFromRequest returns the client-provided idempotency key, if
// any. Duplicate keys make the insert a no-op.
func SourceEventKeyFromRequest(r *http.Request) string {
	if k := strings.TrimSpace(r.Header.Get("Idempotency-Key")); k != "" {
		return k
	}
	return strings.TrimSpace(r.Header.Get("X-Source-Event-Key"))
}

// Logger writes best-effort product events. A nil Logger (or nil DB) is a
// valid no-op, so handlers never branch on whether analytics is wired.
type Logger struct {
	DB *sql.DB
}

func NewLogger(db *sql.DB) *Logger {
	return &Logger{DB: db}
}

// Log inserts one analytics event. Never fails the caller: marshal or insert
// errors are swallowed. Callers pass sanitized props, never raw user text.
func (l *Logger) Log(ctx context.Context, env Envelope, eventName string, props any, sourceEventKey string) {
	if l == nil || l.DB == nil || eventName == "" {
		return
	}

	b, err := json.Marshal(props)
	if err != nil {
		return
	}

	if sourceEventKey != "" {
		_, _ = l.DB.ExecContext(ctx, `
			INSERT INTO analytics_events (
				event_name, event_time,
				session_id, platform, app_version, device_locale,
				source_event_key, properties
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb)
			ON CONFLICT (source_event_key) DO NOTHING
		`, eventName, time.Now().UTC(),
			nullIfEmpty(env.SessionID), env.Platform, env.AppVersion, nullIfEmpty(env.DeviceLocale),
			sourceEventKey, string(b),
		)
		return
	}

	_, _ = l.DB.ExecContext(ctx, `
		INSERT INTO analytics_events (
			event_name, event_time,
			session_id, platform, app_version, device_locale,
			properties
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb)
	`, eventName, time.Now().UTC(),
		nullIfEmpty(env.SessionID), env.Platform, env.AppVersion, nullIfEmpty(env.DeviceLocale),
		string(b),
	)
}

func nullIfEmpty(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
