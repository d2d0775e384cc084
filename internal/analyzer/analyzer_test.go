package analyzer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubAnalyzer_ReturnsCannedResult(t *testing.T) {
	a := NewStubAnalyzer(10 * time.Millisecond)

	start := time.Now()
	res, err := a.Analyze(context.Background(), ImageRef{ID: "img-1"})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	assert.Equal(t, "Living Room", res.RoomType)
	assert.Equal(t, "Modern Minimalist", res.Style)
	assert.Equal(t, "Ambient lighting needed", res.Lighting)
	assert.Equal(t, []int{1, 3, 5}, res.Recommendations)
	assert.Len(t, res.Insights, 4)
}

func TestStubAnalyzer_RequiresImage(t *testing.T) {
	_, err := NewStubAnalyzer(0).Analyze(context.Background(), ImageRef{})
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestStubAnalyzer_Cancelled(t *testing.T) {
	a := NewStubAnalyzer(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := a.Analyze(ctx, ImageRef{ID: "img-1"})
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("analysis did not stop on cancel")
	}
}

func TestStubResult_IsACopy(t *testing.T) {
	r := StubResult()
	r.Recommendations[0] = 99

	assert.Equal(t, 1, StubResult().Recommendations[0])
}
