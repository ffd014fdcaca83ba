package complaints

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Record is a single complaint as delivered by a Source.
// Urgency, Category and SubmissionDate are optional.
type Record struct {
	ID             string
	Status         string
	Urgency        *string
	Category       *string
	SubmissionDate DateLike
}

// DateLike is any value convertible to an instant. Conversion may fail.
type DateLike interface {
	Time() (time.Time, error)
}

// SubmittedAt converts the submission date, reporting false when it is absent or unparseable.
func (r Record) SubmittedAt() (time.Time, bool) {
	if r.SubmissionDate == nil {
		return time.Time{}, false
	}
	t, err := r.SubmissionDate.Time()
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// Timestamp is a document-store timestamp split into seconds and nanoseconds.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanoseconds"`
}

func (ts Timestamp) Time() (time.Time, error) {
	if ts.Nanos < 0 || ts.Nanos >= 1e9 {
		return time.Time{}, fmt.Errorf("timestamp nanoseconds out of range: %d", ts.Nanos)
	}
	return time.Unix(ts.Seconds, int64(ts.Nanos)), nil
}

// EpochMillis is a count of milliseconds since the Unix epoch.
type EpochMillis int64

func (ms EpochMillis) Time() (time.Time, error) {
	return time.UnixMilli(int64(ms)), nil
}

// DateString is a textual date. Values without a zone are read in Location;
// a bare calendar date is read as UTC midnight.
type DateString struct {
	Value    string
	Location *time.Location
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

var localLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2, 2006 15:04:05",
	"1/2/2006",
}

func (d DateString) Time() (time.Time, error) {
	value := strings.TrimSpace(d.Value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", d.Value)
}

// wireRecord is the JSON shape shared by file sources and the snapshot cache.
type wireRecord struct {
	ID             string          `json:"id"`
	Status         string          `json:"status"`
	Urgency        *string         `json:"urgency,omitempty"`
	Category       *string         `json:"category,omitempty"`
	SubmissionDate json.RawMessage `json:"submissionDate,omitempty"`
}

// DecodeRecord parses one JSON object into a Record. Undecodable dates are kept
// as an invalid DateString rather than failing the whole record.
func DecodeRecord(data []byte, loc *time.Location) (Record, error) {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return Record{}, err
	}
	return Record{
		ID:             w.ID,
		Status:         w.Status,
		Urgency:        w.Urgency,
		Category:       w.Category,
		SubmissionDate: decodeDate(w.SubmissionDate, loc),
	}, nil
}

func decodeDate(raw json.RawMessage, loc *time.Location) DateLike {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return DateString{Value: trimmed, Location: loc}
		}
		return DateString{Value: s, Location: loc}
	case '{':
		var obj struct {
			Seconds    *int64 `json:"seconds"`
			Nanos      int32  `json:"nanoseconds"`
			AltSeconds *int64 `json:"_seconds"`
			AltNanos   int32  `json:"_nanoseconds"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil {
			if obj.Seconds != nil {
				return Timestamp{Seconds: *obj.Seconds, Nanos: obj.Nanos}
			}
			if obj.AltSeconds != nil {
				return Timestamp{Seconds: *obj.AltSeconds, Nanos: obj.AltNanos}
			}
		}
	default:
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			return EpochMillis(int64(n))
		}
	}
	return DateString{Value: trimmed, Location: loc}
}

// EncodeRecord renders a Record in the wire shape. Dates are written as RFC 3339
// strings; dates that cannot be converted are written verbatim when textual.
func EncodeRecord(r Record) ([]byte, error) {
	w := wireRecord{
		ID:       r.ID,
		Status:   r.Status,
		Urgency:  r.Urgency,
		Category: r.Category,
	}
	if r.SubmissionDate != nil {
		var value string
		if t, err := r.SubmissionDate.Time(); err == nil {
			value = t.Format(time.RFC3339Nano)
		} else if ds, ok := r.SubmissionDate.(DateString); ok {
			value = ds.Value
		}
		if value != "" {
			raw, err := json.Marshal(value)
			if err != nil {
				return nil, err
			}
			w.SubmissionDate = raw
		}
	}
	return json.Marshal(w)
}
