// Copyright 2019 Intel Corporation. All Rights Reserved.
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

package instrumentation

import (
	"context"
	"net/http"
	"strings"
	"time"

	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	pclient "github.com/prometheus/client_golang/prometheus"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	logger "github.com/pcm-project/pcm-resmgr/pkg/log"
	"github.com/pcm-project/pcm-resmgr/pkg/metrics"
)

// serviceName identifies this binary to the Jaeger and Prometheus exporters.
const serviceName = "pcm-resmgr"

// Function to run when shutting down instrumentation.
var shutdown = func() {}

// IsEnabled returns true if tracing is enabled.
func IsEnabled() bool {
	return opt.Trace > 0.005
}

// Start sets up instrumentation (tracing, metrics collection) for the
// process. It is idempotent: calling it again (for instance from a
// configuration notifier) replaces the previous exporters.
func Start() error {
	Finish()

	if !IsEnabled() {
		return nil
	}

	trace.ApplyConfig(trace.Config{DefaultSampler: opt.Trace.Sampler()})

	jlog := logger.NewLogger("jaeger")
	jopt := jaeger.Options{
		ServiceName:       serviceName,
		CollectorEndpoint: opt.Collector,
		AgentEndpoint:     opt.Agent,
		Process:           jaeger.Process{ServiceName: serviceName},
		OnError:           func(err error) { jlog.Error("%v", err) },
	}
	je, err := jaeger.NewExporter(jopt)
	if err != nil {
		return traceError("failed to create Jaeger exporter: %v", err)
	}
	trace.RegisterExporter(je)

	plog := logger.NewLogger("metrics")
	mgatherer, err := metrics.NewMetricGatherer()
	if err != nil {
		trace.UnregisterExporter(je)
		return traceError("failed to gather built-in metric collectors: %v", err)
	}
	popt := prometheus.Options{
		Namespace: prometheusNamespace(serviceName),
		Gatherer:  pclient.Gatherers{mgatherer, dynamicGatherers},
		OnError:   func(err error) { plog.Error("%v", err) },
	}
	pe, err := prometheus.NewExporter(popt)
	if err != nil {
		trace.UnregisterExporter(je)
		return traceError("failed to create Prometheus exporter: %v", err)
	}
	view.RegisterExporter(pe)
	view.SetReportingPeriod(5 * time.Second)

	mux := http.NewServeMux()
	mux.Handle("/metrics", pe)
	srv := &http.Server{Addr: opt.Metrics, Handler: mux}
	go serveMetrics(plog, srv)

	shutdown = func() {
		srv.Close()
		je.Flush()
		view.UnregisterExporter(pe)
		trace.UnregisterExporter(je)
	}

	return nil
}

// Stop shuts down instrumentation.
func Stop() {
	Finish()
}

// Finish is the older name for Stop, kept for configNotify's re-entry path.
func Finish() {
	shutdown()
	shutdown = func() {}
}

// StartSpan starts a new trace span named label, a child of ctx's span if
// any. The caller must call the returned func to end the span.
func StartSpan(ctx context.Context, label string) (context.Context, func()) {
	ctx, span := trace.StartSpan(ctx, label)
	return ctx, span.End
}

// prometheusNamespace mutates a service name into a valid Prometheus namespace.
func prometheusNamespace(service string) string {
	return strings.ReplaceAll(strings.ToLower(service), "-", "_")
}

// serveMetrics runs the Prometheus /metrics endpoint until srv is closed.
func serveMetrics(log logger.Logger, srv *http.Server) {
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("failed to run Prometheus /metrics endpoint: %v", err)
	}
}
