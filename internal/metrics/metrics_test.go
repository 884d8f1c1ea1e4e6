package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(httpRequests.WithLabelValues("server", "GET /bookings", "200"))
	ObserveHTTP("server", "GET /bookings", http.StatusOK, 15*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("server", "GET /bookings", "200")))

	beforeEvt := testutil.ToFloat64(bookingTransitions.WithLabelValues("booking_approved"))
	IncBookingTransition("booking_approved")
	assert.Equal(t, beforeEvt+1, testutil.ToFloat64(bookingTransitions.WithLabelValues("booking_approved")))

	beforeRL := testutil.ToFloat64(rateLimited)
	IncRateLimited()
	assert.Equal(t, beforeRL+1, testutil.ToFloat64(rateLimited))
}

func TestHandlerExposesMetrics(t *testing.T) {
	Register()
	ObserveHTTP("gateway", "POST /items", http.StatusCreated, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shareit_http_requests_total")
}
