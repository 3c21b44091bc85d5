package discord

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"dollhouse-lurker/internal/adapters/metrics"
)

// MetricsRoundTripper records latency and status of every REST call the
// session makes.
type MetricsRoundTripper struct {
	Proxied http.RoundTripper
}

func NewMetricsRoundTripper(proxied http.RoundTripper) *MetricsRoundTripper {
	if proxied == nil {
		proxied = http.DefaultTransport
	}
	return &MetricsRoundTripper{Proxied: proxied}
}

func (mrt *MetricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := mrt.Proxied.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	route := routeLabel(req.URL.Path)
	metrics.DiscordRequestDuration.WithLabelValues(route, status).Observe(duration)
	metrics.DiscordRequests.WithLabelValues(route, status).Inc()

	return resp, err
}

// routeLabel reduces a REST path to its resource family, e.g.
// /api/v9/channels/123/messages becomes "channels/messages". Ids and
// tokens are dropped to keep label cardinality bounded.
func routeLabel(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) > 0 && segments[0] == "api" {
		segments = segments[1:]
	}
	if len(segments) > 0 && isVersion(segments[0]) {
		segments = segments[1:]
	}
	if len(segments) == 0 || segments[0] == "" {
		return "unknown"
	}

	resource := segments[0]
	sub := ""
	for _, seg := range segments[1:] {
		if isKnownSubresource(seg) {
			sub = seg
		}
	}
	if sub == "" {
		return resource
	}
	return resource + "/" + sub
}

func isVersion(seg string) bool {
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(seg[1:])
	return err == nil
}

var subresources = map[string]bool{
	"messages": true,
	"members":  true,
	"roles":    true,
	"commands": true,
	"callback": true,
	"channels": true,
}

func isKnownSubresource(seg string) bool {
	return subresources[seg]
}
