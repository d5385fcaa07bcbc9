// Package inspect decodes raw Mango account dumps and instruction data for
// the mango-inspect command.
package inspect

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Aidin1998/mango_layouts/pkg/errors"
	"github.com/Aidin1998/mango_layouts/pkg/layout/book"
	"github.com/Aidin1998/mango_layouts/pkg/layout/events"
	"github.com/Aidin1998/mango_layouts/pkg/metrics"
)

// Service decodes records and renders them. It is safe for concurrent use.
type Service struct {
	logger   *zap.Logger
	gatherer prometheus.Gatherer
}

// NewService creates a new inspection service
func NewService(logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, gatherer: prometheus.DefaultGatherer}, nil
}

// Decode decodes data as kind. KindAuto picks the layout from the metadata
// header of a Mango account.
func (s *Service) Decode(kind Kind, data []byte) (any, error) {
	started := time.Now()

	resolved := kind
	if kind == KindAuto {
		detected, err := Detect(data)
		if err != nil {
			s.decodeFailed(kind, data, started, err)
			return nil, fmt.Errorf("detect kind: %w", err)
		}
		s.logger.Debug("Detected record kind", zap.String("kind", string(detected)))
		resolved = detected
	}

	decode, ok := decoders[resolved]
	if !ok || decode == nil {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}

	v, err := decode(data)
	if err != nil {
		s.decodeFailed(resolved, data, started, err)
		return nil, fmt.Errorf("decode %s: %w", resolved, err)
	}

	metrics.ObserveDecode(string(resolved), len(data), started, nil)
	s.logger.Debug("Decoded record",
		zap.String("kind", string(resolved)),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(started)))
	return present(v), nil
}

func (s *Service) decodeFailed(kind Kind, data []byte, started time.Time, err error) {
	metrics.ObserveDecode(string(kind), len(data), started, err)

	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.String("error_kind", errors.KindOf(err)),
		zap.Int("bytes", len(data)),
		zap.Error(err),
	}
	var e *errors.Error
	if errors.As(err, &e) && e.Field != "" {
		fields = append(fields, zap.String("field", e.Field), zap.Int("offset", e.Offset))
	}
	s.logger.Warn("Decode failed", fields...)
}

type taggedNode struct {
	Type book.NodeTag `json:"type"`
	Node book.Node    `json:"node"`
}

type taggedEvent struct {
	Type  events.EventType `json:"type"`
	Event events.Event     `json:"event"`
}

// present wraps single nodes and events with their type so the rendered
// output names the variant.
func present(v any) any {
	switch x := v.(type) {
	case book.Node:
		return taggedNode{Type: x.Tag(), Node: x}
	case events.Event:
		return taggedEvent{Type: x.Type(), Event: x}
	}
	return v
}

// ReadInput reads all of r and decodes it according to encoding. Hex input
// may omit the 0x prefix; surrounding whitespace is ignored for hex and
// base64.
func ReadInput(r io.Reader, encoding string) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	switch encoding {
	case EncodingRaw, "":
		return raw, nil
	case EncodingHex:
		text := strings.TrimSpace(string(raw))
		if !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
			text = "0x" + text
		}
		data, err := hexutil.Decode(text)
		if err != nil {
			return nil, fmt.Errorf("decode hex input: %w", err)
		}
		return data, nil
	case EncodingBase64:
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("decode base64 input: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unknown input encoding %q", encoding)
}

// Render writes v to w as indented JSON or as YAML.
func Render(w io.Writer, v any, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		doc, err := toDocument(v)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}

// toDocument converts v to plain maps and slices through its JSON form so
// YAML output uses the same field names and value rendering as JSON.
func toDocument(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return normalizeNumbers(doc), nil
}

// normalizeNumbers replaces json.Number values with integers where they fit,
// so 64-bit ids survive without float rounding.
func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, item := range x {
			x[k] = normalizeNumbers(item)
		}
		return x
	case []any:
		for i, item := range x {
			x[i] = normalizeNumbers(item)
		}
		return x
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(x.String(), 10, 64); err == nil {
			return u
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	}
	return v
}

// Run reads the configured input, decodes it and writes the rendered record
// to stdout.
func (s *Service) Run(cfg *Config, stdin io.Reader, stdout io.Writer) error {
	in := stdin
	if cfg.Input != "-" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	data, err := ReadInput(in, cfg.Encoding)
	if err != nil {
		return err
	}
	s.logger.Debug("Read input",
		zap.String("input", cfg.Input),
		zap.String("encoding", cfg.Encoding),
		zap.Int("bytes", len(data)))

	v, err := s.Decode(Kind(cfg.Kind), data)
	if err != nil {
		return err
	}
	return Render(stdout, v, cfg.Format)
}

// WriteMetrics writes the decode metrics in the Prometheus text format.
func (s *Service) WriteMetrics(w io.Writer) error {
	families, err := s.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "mango_layout_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
