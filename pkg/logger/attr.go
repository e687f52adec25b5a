package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records d in milliseconds under "duration_ms".
func Duration(d time.Duration) slog.Attr {
	return slog.Int64("duration_ms", d.Milliseconds())
}

// AppID records the OneSignal app id under "app_id".
func AppID(id string) slog.Attr {
	return slog.String("app_id", id)
}

// NotificationID records the notification id under "notification_id".
// An empty id yields an empty Attr.
func NotificationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("notification_id", id)
}

// ExternalID records an idempotency key under "external_id".
func ExternalID(id string) slog.Attr {
	return slog.String("external_id", id)
}

// Method records the HTTP method under "method".
func Method(m string) slog.Attr {
	return slog.String("method", m)
}

// URL records the request URL under "url".
func URL(u string) slog.Attr {
	return slog.String("url", u)
}

// StatusCode records the HTTP status under "status".
func StatusCode(code int) slog.Attr {
	return slog.Int("status", code)
}

// Recipients records the recipient count under "recipients".
func Recipients(n int) slog.Attr {
	return slog.Int("recipients", n)
}

// Body records a request or response body under "body".
func Body(b []byte) slog.Attr {
	return slog.String("body", string(b))
}
