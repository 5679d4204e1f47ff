package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(flagToggles.WithLabelValues("op", "ok"))
	IncFlagToggle("op", "ok")
	assert.Equal(t, before+1, testutil.ToFloat64(flagToggles.WithLabelValues("op", "ok")))

	before = testutil.ToFloat64(notificationsSent.WithLabelValues("line", "error"))
	IncNotification("line", "error")
	assert.Equal(t, before+1, testutil.ToFloat64(notificationsSent.WithLabelValues("line", "error")))

	before = testutil.ToFloat64(channelsClassified)
	AddChannelsClassified(3)
	assert.Equal(t, before+3, testutil.ToFloat64(channelsClassified))

	before = testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/prices", "200"))
	ObserveHTTP("GET", "/api/prices", "200", 0.01)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/prices", "200")))
}
