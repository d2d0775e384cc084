package domain

import "github.com/tair/lightspace/internal/analyzer"

// AnalysisStatus tracks the room analyzer lifecycle
type AnalysisStatus string

const (
	AnalysisIdle      AnalysisStatus = "idle"
	AnalysisAnalyzing AnalysisStatus = "analyzing"
	AnalysisCompleted AnalysisStatus = "completed"
)

// AnalysisState is the room analyzer screen state.
// JobID identifies the analysis in flight; results for any other job are
// dropped. Seq increases on every Start and never goes back.
type AnalysisState struct {
	Status AnalysisStatus     `json:"status"`
	Image  *analyzer.ImageRef `json:"image,omitempty"`
	JobID  string             `json:"job_id,omitempty"`
	Seq    uint64             `json:"seq"`
	Result *analyzer.Result   `json:"result,omitempty"`
}

// SetImage stores a new upload and discards any previous result
func (a *AnalysisState) SetImage(img analyzer.ImageRef) {
	a.Image = &img
	a.Status = AnalysisIdle
	a.JobID = ""
	a.Result = nil
}

// Start marks jobID as the analysis in flight
func (a *AnalysisState) Start(jobID string) error {
	if a.Image == nil {
		return ErrNoRoomImage
	}
	a.Seq++
	a.Status = AnalysisAnalyzing
	a.JobID = jobID
	a.Result = nil
	return nil
}

// Complete stores res if jobID is still the analysis in flight
func (a *AnalysisState) Complete(jobID string, res *analyzer.Result) bool {
	if a.Status != AnalysisAnalyzing || a.JobID != jobID {
		return false
	}
	a.Status = AnalysisCompleted
	a.JobID = ""
	a.Result = res
	return true
}

// Fail abandons jobID if it is still in flight
func (a *AnalysisState) Fail(jobID string) bool {
	if a.Status != AnalysisAnalyzing || a.JobID != jobID {
		return false
	}
	a.Status = AnalysisIdle
	a.JobID = ""
	return true
}

// Reset drops any running or finished analysis but keeps the image.
// It reports whether an analysis was in flight.
func (a *AnalysisState) Reset() bool {
	running := a.Status == AnalysisAnalyzing
	a.Status = AnalysisIdle
	a.JobID = ""
	a.Result = nil
	return running
}

func (a AnalysisState) clone() AnalysisState {
	c := a
	if a.Image != nil {
		img := *a.Image
		c.Image = &img
	}
	if a.Result != nil {
		res := *a.Result
		res.Recommendations = append([]int(nil), a.Result.Recommendations...)
		res.Insights = append([]string(nil), a.Result.Insights...)
		c.Result = &res
	}
	return c
}
