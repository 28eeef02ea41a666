package models

import (
	"bytes"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrPayloadNotObject is returned when a feedback body is valid JSON but not an object.
var ErrPayloadNotObject = errors.New("feedback payload must be a JSON object")

// Feedback is a stored feedback document. ComponentData is always an array or
// null; RightPanelData is nil when the document has no such field.
type Feedback struct {
	ID             bson.ObjectID `json:"id"`
	ComponentData  Value         `json:"componentData"`
	RightPanelData *Value        `json:"rightPanelData,omitempty"`
}

// FeedbackPayload is a partial Feedback taken from a request body. A nil field
// was not present in the body.
type FeedbackPayload struct {
	ComponentData  *Value
	RightPanelData *Value
}

func (p FeedbackPayload) IsEmpty() bool {
	return p.ComponentData == nil && p.RightPanelData == nil
}

// ParseFeedbackPayload reads a request body. An empty body is an empty
// payload, keys other than componentData and rightPanelData are dropped, and
// componentData is coerced to an array.
func ParseFeedbackPayload(body []byte) (FeedbackPayload, error) {
	var p FeedbackPayload
	if len(bytes.TrimSpace(body)) == 0 {
		return p, nil
	}
	doc, err := ParseValue(body)
	if err != nil {
		return p, err
	}
	if doc.Kind() != KindObject {
		return p, ErrPayloadNotObject
	}
	if v, ok := doc.Get("componentData"); ok {
		cd := CoerceComponentData(v)
		p.ComponentData = &cd
	}
	if v, ok := doc.Get("rightPanelData"); ok {
		p.RightPanelData = &v
	}
	return p, nil
}

// CoerceComponentData wraps any scalar or object in a one-element array.
// Arrays and null pass through.
func CoerceComponentData(v Value) Value {
	switch v.Kind() {
	case KindArray, KindNull:
		return v
	}
	return Array(v)
}

// NewFeedback builds the document a create stores: componentData defaults to
// an empty array.
func NewFeedback(id bson.ObjectID, p FeedbackPayload) Feedback {
	f := Feedback{ID: id, ComponentData: Array()}
	f.Apply(p)
	return f
}

// Apply overwrites every field present in p.
func (f *Feedback) Apply(p FeedbackPayload) {
	if p.ComponentData != nil {
		f.ComponentData = *p.ComponentData
	}
	if p.RightPanelData != nil {
		v := *p.RightPanelData
		f.RightPanelData = &v
	}
}
