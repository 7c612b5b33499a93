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

// Package output renders API resources for the command line.
//
// Records are marshalled to JSON first, so a resource.Resource keeps its
// attributes in the order GitHub sent them. The JSON is then written as one
// of three formats:
//
//   - ndjson: one compact object per line, suitable for piping to jq
//   - pretty: indented JSON, one record after another
//   - yaml: one YAML document per record, key order preserved
//
// Example usage:
//
//	w, err := output.NewWriter(os.Stdout, output.FormatYAML)
//	if err != nil {
//	    return err
//	}
//	for _, g := range gists.Items() {
//	    if err := w.Write(g); err != nil {
//	        return err
//	    }
//	}
package output
