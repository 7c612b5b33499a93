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

// Package main implements the octopi command-line interface.
// It exposes the GitHub resource client as subcommands that print the
// resources they touch as NDJSON, indented JSON or YAML.
//
// Usage:
//
//	octopi login --token $GITHUB_TOKEN
//	octopi gist get 1115247
//	octopi gist create --description "notes" --file notes.md
//	octopi repo comments fcoury/octopi --output yaml
//
// Credentials are taken from --token or --username/--password first, then
// from the environment variables named in the config file, then from the
// session saved by "octopi login".
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication, not found or validation error
//   - 3: Network error
package main
