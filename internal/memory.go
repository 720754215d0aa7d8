package internal

import (
	"errors"
	"time"
)

var (
	ErrInvalidKind = errors.New("invalid memory kind")
	ErrNoLog       = errors.New("memory log does not exist")
	ErrNoProvider  = errors.New("no embedding provider configured")
)

// Kind classifies what a memory entry captures.
type Kind string

const (
	KindFact       Kind = "fact"
	KindPreference Kind = "preference"
	KindContext    Kind = "context"
	KindEmotional  Kind = "emotional"
)

// DefaultKind is used when the caller does not specify a kind.
const DefaultKind = KindFact

// Kinds lists the valid kinds in their canonical order.
func Kinds() []Kind {
	return []Kind{KindFact, KindPreference, KindContext, KindEmotional}
}

func NewKind(s string) (Kind, error) {
	if s == "" {
		return DefaultKind, nil
	}
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", ErrInvalidKind
}

func (k Kind) String() string {
	return string(k)
}

// IDLayout is the minute-resolution timestamp used as the entry id and as the
// Markdown heading in the memory log. Two saves within the same minute share
// an id; the log keeps both blocks, the vector cache keeps one row.
const IDLayout = "2006-01-02 15:04"

// Entry is one remembered fact/preference as read from the memory log.
// Vector is filled in from the cache side-file and stays nil until an
// embedding under the currently active model succeeds.
type Entry struct {
	ID      string
	Kind    Kind
	Content string
	Vector  []float32
}

// NewEntry stamps a new entry with the minute-resolution id for now.
func NewEntry(content string, kind Kind, now time.Time) Entry {
	return Entry{
		ID:      now.Format(IDLayout),
		Kind:    kind,
		Content: content,
	}
}

// Time parses the entry id back into its creation instant. Entries with
// malformed ids (hand-edited logs) report a zero time.
func (e Entry) Time() time.Time {
	t, err := time.ParseInLocation(IDLayout, e.ID, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
