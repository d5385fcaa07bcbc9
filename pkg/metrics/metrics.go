package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aidin1998/mango_layouts/pkg/errors"
)

// OutcomeOK labels a successful decode. Failures are labelled with their
// error kind.
const OutcomeOK = "ok"

// Decodes counts decode attempts by record kind and outcome
var Decodes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mango_layout_decodes_total",
		Help: "Total number of account and instruction decodes",
	},
	[]string{"kind", "outcome"},
)

// DecodeLatency records how long each decode took
var DecodeLatency = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "mango_layout_decode_seconds",
		Help:    "Latency in seconds to decode one record",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
	},
	[]string{"kind"},
)

// DecodedBytes counts input bytes handed to the decoders
var DecodedBytes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mango_layout_decoded_bytes_total",
		Help: "Total number of input bytes passed to the decoders",
	},
	[]string{"kind"},
)

func init() {
	prometheus.MustRegister(Decodes, DecodeLatency, DecodedBytes)
}

// Outcome returns the outcome label for err.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if kind := errors.KindOf(err); kind != "" {
		return kind
	}
	return "error"
}

// ObserveDecode records one decode of size bytes that started at started.
func ObserveDecode(kind string, size int, started time.Time, err error) {
	Decodes.WithLabelValues(kind, Outcome(err)).Inc()
	DecodeLatency.WithLabelValues(kind).Observe(time.Since(started).Seconds())
	DecodedBytes.WithLabelValues(kind).Add(float64(size))
}
