// Package logger builds *slog.Logger instances for the client and the CLI.
//
// New creates a JSON or text handler with optional static attributes. The
// handler also appends attributes attached to the record's context with
// ContextWithAttrs, so a caller can tag every log line of one operation
// (for example a CLI command or a notification external_id) without
// threading a logger through.
//
// Attribute helpers (AppID, NotificationID, Method, URL, StatusCode, Duration,
// Recipients, Error) keep key names consistent across packages. Error and
// NotificationID return an empty Attr for zero values, so they can be passed
// unconditionally.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithVerbose(verbose),
//	    logger.WithAttr(logger.Component("onesignal-cli")),
//	)
//	ctx = logger.ContextWithAttrs(ctx, slog.String("command", "send"))
//
//	client, err := onesignal.New(opts, onesignal.WithLogger(log))
//
// Libraries accept a nil logger and fall back to Discard.
package logger
