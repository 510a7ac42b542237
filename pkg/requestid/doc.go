// Package requestid tags HTTP requests with a correlation identifier and
// carries it through the context, so log records from one request can be
// stitched together across services.
//
// Middleware validates a client-supplied X-Request-ID and reuses it, or
// generates a UUID when the header is missing or malformed. The identifier is
// echoed back in the response header.
//
// Mount it outside the tenant resolution middleware so denied requests are
// correlated too:
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//	r.Use(tenantMiddleware)
//
// LoggerExtractor integrates with the logger package:
//
//	log := logger.New(
//		logger.WithContextExtractors(requestid.LoggerExtractor(), tenant.LoggerExtractor()),
//	)
//
// The package returns no errors; invalid identifiers are silently replaced.
package requestid
