// Package observe instruments streams with structured logging,
// OpenTelemetry metrics, and tracing.
//
// The operators here are pass-through: they forward every event
// unchanged while recording it on the side. Wrap a stream close to
// where it is subscribed so the instrumentation sees exactly what the
// consumer sees:
//
//	counted := observe.Count(events, counter, attribute.String("source", "orders"))
//	logged := observe.Log(counted, log, "orders")
//	logged.Subscribe(consumer)
//
// InitMeter and InitTracer set up OTLP HTTP exporters and install the
// resulting providers globally.
package observe
