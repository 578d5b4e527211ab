package domain

import "time"

// Failure is the serializable form of a PairError.
type Failure struct {
	Background string `json:"background"`
	Foreground string `json:"foreground,omitempty"`
	Stage      Stage  `json:"stage"`
	Error      string `json:"error"`
}

// Report summarizes a run. Completed is false when the run aborted, so a
// report left next to a partial set of artifacts tells the two apart.
type Report struct {
	Job         Job       `json:"job"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Completed   bool      `json:"completed"`
	Backgrounds int       `json:"backgrounds"`
	Foregrounds int       `json:"foregrounds"`
	Attempted   int       `json:"attempted"`
	Written     int       `json:"written"`
	Failures    []Failure `json:"failures,omitempty"`
	Abort       string    `json:"abort,omitempty"`
}

// RecordFailure appends err to the report's failures.
func (r *Report) RecordFailure(err *PairError) {
	r.Failures = append(r.Failures, Failure{
		Background: err.Background,
		Foreground: err.Foreground,
		Stage:      err.Stage,
		Error:      err.Err.Error(),
	})
}

// Failed returns the number of recorded failures.
func (r *Report) Failed() int {
	return len(r.Failures)
}
