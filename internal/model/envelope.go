package model

import "encoding/json"

// Envelope is the commerce backend's uniform response wrapper. It is
// returned for success and failure alike; on 4xx/5xx, Message carries the
// human-readable reason and Data may carry a string array of field errors.
type Envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// ErrorDetails extracts the string-array form of Data from a failure
// envelope. Returns nil when Data is absent or not a string array.
func (e *Envelope) ErrorDetails() []string {
	if len(e.Data) == 0 {
		return nil
	}
	var details []string
	if err := json.Unmarshal(e.Data, &details); err != nil {
		return nil
	}
	return details
}

// Decode unmarshals a success envelope's Data into v.
func (e *Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}
