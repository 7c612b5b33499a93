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

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Format selects how records are rendered.
type Format string

const (
	FormatNDJSON Format = "ndjson"
	FormatPretty Format = "pretty"
	FormatYAML   Format = "yaml"
)

// Formats lists the accepted formats.
var Formats = []Format{FormatNDJSON, FormatPretty, FormatYAML}

// ParseFormat accepts a format name, case-insensitively. "json" is an alias
// for ndjson.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", "json", FormatNDJSON:
		return FormatNDJSON, nil
	case FormatPretty, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want ndjson, pretty or yaml)", s)
	}
}

// Writer renders records to an io.Writer. It is safe for concurrent use.
type Writer struct {
	mu        sync.Mutex
	output    io.Writer
	format    Format
	yaml      *yaml.Encoder
	count     int
	closeFunc func() error
}

var _ RecordWriter = (*Writer)(nil)

// NewWriter creates a Writer for format on w.
func NewWriter(w io.Writer, format Format) (*Writer, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	out := &Writer{output: w, format: format}
	if format == FormatYAML {
		out.yaml = yaml.NewEncoder(w)
		out.yaml.SetIndent(2)
	}
	return out, nil
}

// NewFileWriter creates a Writer on a new file.
// The caller must call Close() when done to ensure the file is properly closed.
func NewFileWriter(filename string, format Format) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w, err := NewWriter(file, format)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	w.closeFunc = file.Close
	return w, nil
}

// Write renders one record.
func (w *Writer) Write(record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.format {
	case FormatPretty:
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("failed to indent record: %w", err)
		}
		buf.WriteByte('\n')
		_, err = w.output.Write(buf.Bytes())
	case FormatYAML:
		err = w.writeYAML(data)
	default:
		_, err = w.output.Write(append(data, '\n'))
	}
	if err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.count++
	return nil
}

// yamlNode re-reads JSON as a block-style YAML document. Parsing into a
// yaml.Node keeps object keys in their JSON order.
func yamlNode(data []byte) (*yaml.Node, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return &node, nil
}

func (w *Writer) writeYAML(data []byte) error {
	node, err := yamlNode(data)
	if err != nil {
		return err
	}
	return w.yaml.Encode(node)
}

// blockStyle clears the flow and quoting styles JSON input carries. The
// encoder re-quotes strings that would otherwise read as another type.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close flushes YAML output and closes the underlying file, if any.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.yaml != nil {
		if err := w.yaml.Close(); err != nil {
			return fmt.Errorf("failed to flush yaml output: %w", err)
		}
	}
	if w.closeFunc != nil {
		return w.closeFunc()
	}
	return nil
}
