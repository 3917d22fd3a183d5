package observe

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

// shutdown flushes with a short deadline; the test endpoint is not a
// live collector, so the export error is expected and ignored.
func shutdown(t *testing.T, s interface {
	Shutdown(context.Context) error
}) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = s.Shutdown(ctx)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("test-service")
	if cfg.ServiceName != "test-service" {
		t.Errorf("ServiceName = %q, want test-service", cfg.ServiceName)
	}
	if cfg.ServiceVersion != "1.0.0" {
		t.Errorf("ServiceVersion = %q, want 1.0.0", cfg.ServiceVersion)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("Endpoint = %q, want localhost:4318", cfg.Endpoint)
	}
	if !cfg.Insecure {
		t.Error("Insecure = false, want true for development defaults")
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("Interval = %v, want 15s", cfg.Interval)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("SampleRate = %v, want 1.0", cfg.SampleRate)
	}
}

func TestInitTracer(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs)

	tp, err := InitTracer(context.Background(), DefaultConfig("test-service"), log)
	if err != nil {
		t.Fatalf("InitTracer() error: %v", err)
	}
	defer shutdown(t, tp)

	if otel.GetTracerProvider() != tp {
		t.Error("tracer provider was not installed globally")
	}
	if !strings.Contains(logs.String(), "tracer initialized") {
		t.Errorf("init was not logged:\n%s", logs.String())
	}
}

func TestInitTracer_SamplingRates(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		recording  bool
	}{
		{"always sample", 1.0, true},
		{"never sample", 0.0, false},
		{"ratio based", 0.5, true}, // rate only checked for construction
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig("test")
			cfg.SampleRate = tc.sampleRate

			tp, err := InitTracer(context.Background(), cfg, zerolog.Nop())
			if err != nil {
				t.Fatalf("InitTracer() error: %v", err)
			}
			defer shutdown(t, tp)

			if tc.sampleRate == 0.5 {
				return
			}
			_, span := tp.Tracer("test").Start(context.Background(), "lookup")
			defer span.End()
			if span.IsRecording() != tc.recording {
				t.Errorf("IsRecording() = %v with rate %v, want %v",
					span.IsRecording(), tc.sampleRate, tc.recording)
			}
		})
	}
}

func TestInitTracer_Secure(t *testing.T) {
	cfg := DefaultConfig("test")
	cfg.Insecure = false

	tp, err := InitTracer(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("InitTracer() error: %v", err)
	}
	shutdown(t, tp)
}

func TestInitMeter(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs)

	mp, err := InitMeter(context.Background(), DefaultConfig("test-service"), log)
	if err != nil {
		t.Fatalf("InitMeter() error: %v", err)
	}
	defer shutdown(t, mp)

	if otel.GetMeterProvider() != mp {
		t.Error("meter provider was not installed globally")
	}
	if !strings.Contains(logs.String(), "meter initialized") {
		t.Errorf("init was not logged:\n%s", logs.String())
	}
}

func TestInitMeter_ZeroIntervalUsesReaderDefault(t *testing.T) {
	cfg := DefaultConfig("test")
	cfg.Interval = 0
	cfg.Insecure = false

	mp, err := InitMeter(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("InitMeter() error: %v", err)
	}
	shutdown(t, mp)
}
