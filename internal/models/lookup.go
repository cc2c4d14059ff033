package models

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrNoResult marks a lookup whose HTTP round trip succeeded but whose
// document list was empty.
var ErrNoResult = errors.New("no result")

// Lookup is the outcome of one external call. Err == nil means Document holds
// the first (and only consumed) match. Exchange is retained whenever the
// service returned a parseable 2xx body, including the no-result case, so
// archiving can run after the batch.
type Lookup struct {
	Document *Document
	Exchange *Exchange
	Err      error
}

// OK reports whether the lookup produced a usable document.
func (l Lookup) OK() bool {
	return l.Err == nil && l.Document != nil
}

// Exchange captures one raw request/response pair for archiving.
type Exchange struct {
	URL        string
	Params     map[string]string
	Longitude  float64
	Latitude   float64
	Timestamp  time.Time
	StatusCode int
	Headers    map[string]string
	Body       json.RawMessage
}
