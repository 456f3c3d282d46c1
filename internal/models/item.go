package models

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

// Field names managed or required by the dispatcher. Every other field on an
// item is caller-supplied and passed through verbatim.
const (
	FieldID       = "id"
	FieldCreated  = "created"
	FieldModified = "modified"
)

var validate = validator.New()

// Item is a free-form stored record keyed by its "id" field.
type Item map[string]interface{}

// ParseItem decodes a request body into an Item. Any non-object payload is an
// error.
func ParseItem(body []byte) (Item, error) {
	var item Item
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// ID returns the item's key, or "" when the id field is absent or not a
// string.
func (i Item) ID() string {
	id, _ := i[FieldID].(string)
	return id
}

// Validate checks the single schema rule the system enforces: a non-empty
// string id.
func (i Item) Validate() error {
	return validate.Var(i.ID(), "required")
}

// StampCreated sets both timestamps to the same instant. Called exactly once,
// at creation.
func (i Item) StampCreated(now time.Time) {
	ts := Timestamp(now)
	i[FieldCreated] = ts
	i[FieldModified] = ts
}

// StampModified advances the modified timestamp only; created is immutable.
func (i Item) StampModified(now time.Time) {
	i[FieldModified] = Timestamp(now)
}

// Timestamp renders an instant in the stored timestamp format: RFC 3339 with
// nanoseconds, always UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
