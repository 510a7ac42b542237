// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// The factory New creates a *slog.Logger configured by Option functions:
// output format (text or json), minimum level, static attributes, and
// ContextExtractor callbacks that pull attributes out of the context on every
// record. The extractor hook is what ties logging to tenancy here: register
// tenant.LoggerExtractor once and every record logged under a resolved tenant
// carries its tenant_id without any call-site discipline.
//
// # Architecture
//
// New picks the concrete slog handler (slog.NewTextHandler or
// slog.NewJSONHandler) from the configured Format, then wraps it in
// LogHandlerDecorator, which runs the registered ContextExtractor callbacks
// before delegating. Attribute helpers in attr.go (TenantID, Operation,
// Entity, SettingKey, Component, Duration, Error) keep key naming consistent
// across the codebase.
//
// # Usage
//
//	log := logger.New(
//		logger.WithProduction("tenantguard"),
//		logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "catalogue validated",
//		logger.Component("policy"),
//		logger.Duration(time.Since(start)),
//	)
//
// # Error Handling
//
// Error and Errors produce attributes only for non-nil errors, so
//
//	log.Info("unit of work finished", logger.Error(err))
//
// needs no nil check at the call site.
package logger
