package metrics

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type fixedCount struct {
	n   int
	err error
}

func (c *fixedCount) Count(ctx context.Context) (int, error) { return c.n, c.err }

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, &fixedCount{})

	m.ObserveRequest(http.MethodGet, "/api/products", http.StatusOK, 5*time.Millisecond)
	m.CartItemAdded(3)
	m.CartItemAdded(1)
	m.PurchaseCompleted(258000)
	m.AnalysisFinished(OutcomeCompleted)
	m.AnalysisFinished(OutcomeCancelled)
	m.Navigated("checkout")
	m.SessionStarted()
	m.SessionStarted()
	m.SessionEnded()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCounter.WithLabelValues("GET", "/api/products", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cartAdditions))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.cartUnits))
	assert.Equal(t, 258000.0, testutil.ToFloat64(m.revenue))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses.WithLabelValues(OutcomeCancelled)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.sessionsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionsDeleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.navigationCount.WithLabelValues("checkout")))
}

func TestActiveSessions_FollowsStore(t *testing.T) {
	store := &fixedCount{n: 3}
	m := New(prometheus.NewRegistry(), store)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.activeSessions))

	// sessions expiring in the store lower the gauge without any delete
	store.n = 1
	assert.Equal(t, 1.0, testutil.ToFloat64(m.activeSessions))

	store.err = errors.New("store down")
	assert.Equal(t, -1.0, testutil.ToFloat64(m.activeSessions))
}

func TestNew_RegistersOncePerRegistry(t *testing.T) {
	store := &fixedCount{}
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry(), store)
		New(prometheus.NewRegistry(), store)
	})
	assert.Panics(t, func() {
		reg := prometheus.NewRegistry()
		New(reg, store)
		New(reg, store)
	})
}
