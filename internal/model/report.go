package model

import "time"

// RunConfig is the explicit configuration passed into a pipeline run.
type RunConfig struct {
	Capital        float64
	RecipientEmail string
	Mode           Mode
}

// Report is the ordered output of one pipeline run.
type Report struct {
	RunID       string         `json:"run_id"`
	Mode        Mode           `json:"mode"`
	GeneratedAt time.Time      `json:"generated_at"`
	Capital     float64        `json:"capital"`
	Results     []SignalResult `json:"results"`
	Skipped     []Outcome      `json:"-"`
	// Series holds the price history of each result symbol, for charting.
	Series map[string]*InstrumentSeries `json:"-"`
}

// Empty reports whether the run produced no candidates.
func (r *Report) Empty() bool {
	return r == nil || len(r.Results) == 0
}

// Attachment is a rendered file handed to a notifier.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message is a single notification.
type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
	// Markup marks Body as already formatted Telegram HTML.
	Markup bool
}
