// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	attrOperation   = "operation"
	attrMethod      = "method"
	attrStatus      = "status"
	attrKind        = "kind"
	attrAssociation = "association"
	attrResult      = "result"
)

// Association resolution results.
const (
	ResolutionFetched  = "fetched"
	ResolutionMemoized = "memoized"
	ResolutionEmbedded = "embedded"
	ResolutionError    = "error"
)

// Metrics records API and association metrics. The zero value, and a nil
// *Metrics, record nothing.
type Metrics struct {
	apiRequestsTotal       metric.Int64Counter
	apiRequestDuration     metric.Float64Histogram
	associationResolutions metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.apiRequestsTotal, err = meter.Int64Counter(
		"github_api_requests_total",
		metric.WithDescription("Total number of GitHub API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create github_api_requests_total counter: %w", err)
	}

	m.apiRequestDuration, err = meter.Float64Histogram(
		"github_api_request_duration_seconds",
		metric.WithDescription("GitHub API request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create github_api_request_duration_seconds histogram: %w", err)
	}

	m.associationResolutions, err = meter.Int64Counter(
		"association_resolutions_total",
		metric.WithDescription("Association lookups by outcome"),
		metric.WithUnit("{resolution}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create association_resolutions_total counter: %w", err)
	}

	return m, nil
}

// RecordAPIRequest records one API call. statusCode is 0 when no response was
// received.
func (m *Metrics) RecordAPIRequest(ctx context.Context, operation, method string, statusCode int, duration time.Duration) {
	if m == nil || m.apiRequestsTotal == nil || m.apiRequestDuration == nil {
		return
	}

	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	attrs := metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrMethod, method),
		attribute.String(attrStatus, status),
	)
	m.apiRequestsTotal.Add(ctx, 1, attrs)
	m.apiRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordAssociation records how an association lookup was satisfied.
func (m *Metrics) RecordAssociation(ctx context.Context, kind, association, result string) {
	if m == nil || m.associationResolutions == nil {
		return
	}
	m.associationResolutions.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrKind, kind),
		attribute.String(attrAssociation, association),
		attribute.String(attrResult, result),
	))
}
