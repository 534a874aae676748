package history

import (
	"encoding/json"
	"time"
)

type outputPayload struct {
	Name       string `json:"name"`
	Dimensions string `json:"dimensions"`
	Bytes      int64  `json:"bytes"`
}

type runPayload struct {
	Time       string          `json:"time"`
	Status     string          `json:"status"`
	Source     string          `json:"source"`
	OutputDir  string          `json:"output_dir"`
	Engine     string          `json:"engine,omitempty"`
	DurationMS int64           `json:"duration_ms"`
	Error      string          `json:"error,omitempty"`
	Outputs    []outputPayload `json:"outputs"`
}

// Payload renders a run as the JSON message sent to MQTT and webhooks.
func Payload(r Run) ([]byte, error) {
	p := runPayload{
		Time:       r.Time.Format(time.RFC3339),
		Status:     string(r.Status),
		Source:     r.Source,
		OutputDir:  r.OutputDir,
		Engine:     r.Engine,
		DurationMS: r.Duration.Milliseconds(),
		Error:      r.Error,
		Outputs:    make([]outputPayload, 0, len(r.Outputs)),
	}
	for _, o := range r.Outputs {
		p.Outputs = append(p.Outputs, outputPayload{Name: o.Name, Dimensions: o.Dimensions, Bytes: o.Bytes})
	}
	return json.Marshal(p)
}
