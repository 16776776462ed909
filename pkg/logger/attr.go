package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// OrganizationID records the organization identifier under the key
// "organization_id". If id is nil, it returns an empty Attr.
func OrganizationID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("organization_id", id)
}

// Plan records a plan key under the key "plan".
func Plan(plan any) slog.Attr {
	if plan == nil {
		return slog.Attr{}
	}
	return slog.Any("plan", plan)
}

// Day records a UTC usage day under the key "day".
func Day(day any) slog.Attr {
	if day == nil {
		return slog.Attr{}
	}
	return slog.Any("day", day)
}

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}
