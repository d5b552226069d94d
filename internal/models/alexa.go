// internal/models/alexa.go
package models

// SkillRequest is the voice platform event. Only the fields the skill reads
// are declared; everything else in the payload is ignored.
type SkillRequest struct {
	Version string       `json:"version,omitempty"`
	Session *SkillSession `json:"session,omitempty"`
	Request RequestBody  `json:"request"`
}

// SkillSession identifies the conversation the event belongs to.
type SkillSession struct {
	SessionID string `json:"sessionId,omitempty"`
}

// RequestBody is the request part of the event.
type RequestBody struct {
	Type      string  `json:"type,omitempty"`
	RequestID string  `json:"requestId,omitempty"`
	Locale    string  `json:"locale,omitempty"`
	Intent    *Intent `json:"intent,omitempty"`
}

// Intent is the resolved user intent with its slots keyed by name.
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

// Slot is one intent slot. The platform omits value when the slot is unfilled.
type Slot struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// SlotValue returns the value of the named slot. The bool is false when the
// slot is absent or was left unfilled.
func (i *Intent) SlotValue(name string) (string, bool) {
	if i == nil || i.Slots == nil {
		return "", false
	}
	slot, ok := i.Slots[name]
	if !ok || slot.Value == "" {
		return "", false
	}
	return slot.Value, true
}

// ResponseEnvelope is the fixed response shape the platform expects.
type ResponseEnvelope struct {
	Version           string                 `json:"version"`
	SessionAttributes map[string]interface{} `json:"sessionAttributes"`
	Response          SkillResponse          `json:"response"`
}

// SkillResponse carries the speech and the session flag.
type SkillResponse struct {
	OutputSpeech     OutputSpeech `json:"outputSpeech"`
	ShouldEndSession bool         `json:"shouldEndSession"`
}

// OutputSpeech is the text the device speaks.
type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

const (
	EnvelopeVersion = "1.0"
	SpeechPlainText = "PlainText"
)

// BuildResponse wraps text into the envelope. sessionAttributes is always an
// empty object, never null.
func BuildResponse(text string, shouldEndSession bool) *ResponseEnvelope {
	return &ResponseEnvelope{
		Version:           EnvelopeVersion,
		SessionAttributes: map[string]interface{}{},
		Response: SkillResponse{
			OutputSpeech: OutputSpeech{
				Type: SpeechPlainText,
				Text: text,
			},
			ShouldEndSession: shouldEndSession,
		},
	}
}
