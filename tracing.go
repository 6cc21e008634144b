// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package agora

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// setupTracing configures the global tracer provider. Spans are
// submitted to a HTTP(s) endpoint using OTLP, configured via the
// OTEL_EXPORTER_OTLP_* env vars, with optional stdout output for
// debugging. The database layer's gorm tracing plugin picks up the
// global provider automatically.
func (a *Agora) setupTracing() error {
	ctx := context.Background()
	traceResource, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName("agora"),
		),
	)
	if err != nil {
		return err
	}
	tracerProviderOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(traceResource),
	}
	otlpExporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return err
	}
	tracerProviderOpts = append(
		tracerProviderOpts,
		sdktrace.WithBatcher(otlpExporter),
	)
	if a.config.tracingStdout {
		stdoutExporter, err := stdouttrace.New(
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return err
		}
		tracerProviderOpts = append(
			tracerProviderOpts,
			sdktrace.WithBatcher(stdoutExporter),
		)
	}
	a.tracerProvider = sdktrace.NewTracerProvider(tracerProviderOpts...)
	otel.SetTracerProvider(a.tracerProvider)
	return nil
}
