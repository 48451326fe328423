package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLabels(t *testing.T) {
	labels := map[string]string{
		"Route":      "/api/v1/invoices/:docNo",
		"http-verb":  "GET",
		"user_id":    "42",
		"doc_no":     "HD0001",
		"empty":      "",
		"!!!":        "dropped",
		"long value": strings.Repeat("x", MaxLabelValueLength+10),
	}

	pairs := sanitizeLabels(labels)

	assert.Equal(t, []string{
		"route", "/api/v1/invoices/:docNo",
		"http_verb", "GET",
		"long_value", strings.Repeat("x", MaxLabelValueLength),
	}, pairs)
}

func TestSanitizeLabels_Empty(t *testing.T) {
	assert.Nil(t, sanitizeLabels(nil))
}

func TestWithProfilingLabels(t *testing.T) {
	var route, op string
	var ok bool

	WithProfilingLabels(context.Background(), OperationLabels("create_invoice", HTTPRequestLabels("/api/v1/invoices", "POST")),
		func(ctx context.Context) {
			route, ok = pprof.Label(ctx, ProfilingLabelRoute)
			op, _ = pprof.Label(ctx, ProfilingLabelOperation)
		})

	assert.True(t, ok)
	assert.Equal(t, "/api/v1/invoices", route)
	assert.Equal(t, "create_invoice", op)
}

func TestWithProfilingLabels_NoLabels(t *testing.T) {
	called := false
	WithProfilingLabels(context.Background(), map[string]string{"user_id": "1"}, func(ctx context.Context) {
		called = true
		_, ok := pprof.Label(ctx, "user_id")
		assert.False(t, ok)
	})
	assert.True(t, called)
}

func TestHTTPRequestLabels_SkipsEmpty(t *testing.T) {
	assert.Equal(t, map[string]string{ProfilingLabelMethod: "GET"}, HTTPRequestLabels("", "GET"))
}
