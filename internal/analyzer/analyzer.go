package analyzer

import (
	"context"
	"errors"
	"time"
)

// ErrNoImage is returned when analysis is requested without an uploaded image
var ErrNoImage = errors.New("no room image uploaded")

// ImageRef is an opaque handle to an uploaded room photo.
// The image bytes are never inspected or kept.
type ImageRef struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Result is a room analysis with recommended product ids
type Result struct {
	RoomType        string   `json:"room_type"`
	Style           string   `json:"style"`
	Lighting        string   `json:"lighting"`
	Recommendations []int    `json:"recommendations"`
	Insights        []string `json:"insights"`
}

// Analyzer turns a room image into lighting recommendations
type Analyzer interface {
	Analyze(ctx context.Context, img ImageRef) (*Result, error)
}

// StubAnalyzer waits a fixed delay and returns a canned living-room result.
// It stands in for an inference backend and never looks at the image.
type StubAnalyzer struct {
	delay time.Duration
}

// NewStubAnalyzer creates a stub analyzer with the given simulated latency
func NewStubAnalyzer(delay time.Duration) *StubAnalyzer {
	return &StubAnalyzer{delay: delay}
}

// Analyze returns the canned result after the delay, or ctx.Err() if
// ctx ends first
func (a *StubAnalyzer) Analyze(ctx context.Context, img ImageRef) (*Result, error) {
	if img.ID == "" {
		return nil, ErrNoImage
	}

	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	return StubResult(), nil
}

// StubResult returns a fresh copy of the canned analysis
func StubResult() *Result {
	return &Result{
		RoomType:        "Living Room",
		Style:           "Modern Minimalist",
		Lighting:        "Ambient lighting needed",
		Recommendations: []int{1, 3, 5},
		Insights: []string{
			"A spacious room suits a combination of ceiling and accent lighting",
			"Clean, simple fixtures match a minimalist interior",
			"Use a warm color temperature (2700K-3000K) for a cozy atmosphere",
			"Use the high ceiling for pendant lights that give the space rhythm",
		},
	}
}
