package api

import (
	"log/slog"
	"net/http"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

// Metric names exposed on /metrics.
const (
	metricClients     = "inkrelay_clients_connected"
	metricStored      = "inkrelay_strokes_stored"
	metricStrokes     = "inkrelay_strokes_total"
	metricClears      = "inkrelay_clears_total"
	metricDropped     = "inkrelay_dropped_events_total"
	metricEvicted     = "inkrelay_evicted_clients_total"
	metricConnections = "inkrelay_connections_total"
)

// metrics returns GET /metrics in the Prometheus text format.
func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	w.Header().Set("Content-Type", string(format))
	enc := expfmt.NewEncoder(w, format)
	for _, mf := range h.families() {
		if err := enc.Encode(mf); err != nil {
			slog.Warn("api: encode metric failed", "metric", mf.GetName(), "err", err)
			return
		}
	}
}

// families snapshots the hub and log into metric families.
func (h *Handler) families() []*dto.MetricFamily {
	st := h.hub.Stats()
	return []*dto.MetricFamily{
		gauge(metricClients, "WebSocket clients currently connected.", float64(h.hub.Count())),
		gauge(metricStored, "Strokes held in the log since the last clear.", float64(h.log.Len())),
		counter(metricStrokes, "Strokes accepted and broadcast.", st.Strokes),
		counter(metricClears, "Clear events applied.", st.Clears),
		counter(metricDropped, "Inbound events rejected as malformed or unknown.", st.Dropped),
		counter(metricEvicted, "Clients disconnected because their send queue was full.", st.Evicted),
		counter(metricConnections, "WebSocket connections accepted.", st.Connections),
	}
}

func gauge(name, help string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(v)}}},
	}
}

func counter(name, help string, v uint64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_COUNTER.Enum(),
		Metric: []*dto.Metric{{Counter: &dto.Counter{Value: proto.Float64(float64(v))}}},
	}
}
