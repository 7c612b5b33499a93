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

// Package instrumentation wires OpenTelemetry metrics and tracing for API
// calls made by the client.
//
// Metrics:
//
//   - github_api_requests_total{operation,method,status}
//   - github_api_request_duration_seconds{operation,method,status}
//   - association_resolutions_total{kind,association,result}
//
// Exporters are selected by Config: prometheus (pull, optionally written to a
// node_exporter textfile with WriteMetrics), otlp (HTTP push) or stdout.
// A disabled Provider hands out no-op recorders and tracers, so callers never
// check whether instrumentation is on.
package instrumentation
