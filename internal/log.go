package internal

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

const logHeader = "# Memory Log\n"

var entryHeading = regexp.MustCompile(`^## (\d{4}-\d{2}-\d{2} \d{2}:\d{2})(?: \[([a-z]+)\])?\s*$`)

// AppendEntry appends one dated block to the memory log, creating the file
// with its header on first write. The log is the source of truth for entry
// content; nothing in this package rewrites or deletes existing blocks.
func AppendEntry(path string, entry Entry) error {
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open memory log: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	if fresh {
		b.WriteString(logHeader)
	}
	b.WriteString(fmt.Sprintf("\n## %s [%s]\n%s\n", entry.ID, entry.Kind, strings.TrimRight(entry.Content, "\n")))

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("append memory log: %w", err)
	}
	return nil
}

// ReadLog parses the memory log into entries in file order (oldest first).
// A missing file is the explicit "no memories yet" state, reported as
// ErrNoLog for the engine to translate, never as a failure to the user.
func ReadLog(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoLog
	}
	if err != nil {
		return nil, fmt.Errorf("read memory log: %w", err)
	}

	var entries []Entry
	var current *Entry
	var content []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(content, "\n"))
		entries = append(entries, *current)
		current = nil
		content = nil
	}

	for _, line := range strings.Split(string(data), "\n") {
		if m := entryHeading.FindStringSubmatch(line); m != nil {
			flush()
			kind, err := NewKind(m[2])
			if err != nil {
				kind = DefaultKind
			}
			current = &Entry{ID: m[1], Kind: kind}
			continue
		}
		if current != nil {
			content = append(content, line)
		}
	}
	flush()

	return entries, nil
}
