// Package logger is a thin factory around log/slog used across the
// entitlement engine.
//
// New builds a *slog.Logger from functional options: output format (text or
// JSON), minimum level, static attributes, and ContextExtractor callbacks
// that pull request-scoped values out of context.Context on every record.
//
// attr.go keeps attribute naming consistent across the codebase: user_id,
// organization_id, plan, day, and error always serialize under the same keys
// no matter which package emits them.
//
//	log := logger.New(
//		logger.WithProduction("entitlements"),
//	)
//	log.InfoContext(ctx, "request denied by daily quota",
//		logger.UserID(userID),
//		logger.Plan(entitlement.PlanBasic),
//	)
package logger
