// Package instrumentation provides OpenTelemetry (OTEL) instrumentation
// for the authflight library.
//
// It exposes metrics and traces for credential refresh coordination:
// refreshes triggered, completed and rejected, parked request counts, and
// retry verdicts. When disabled, no-op providers are used and recording
// has zero overhead.
//
// # Quick Start
//
//	inst, err := instrumentation.New(instrumentation.Config{
//		ServiceName:    "my-service",
//		ServiceVersion: "1.0.0",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Shutdown(context.Background())
//
//	interceptor, err := authflight.New(authflight.Config{
//		Authenticator:   authenticator,
//		Instrumentation: inst,
//	})
package instrumentation
