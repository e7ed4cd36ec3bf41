package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-logfmt/logfmt"
)

// rejectedMsg is the message the basket reducer logs for a rejected action.
const rejectedMsg = "action rejected"

// Record is one parsed slog text line.
type Record struct {
	Time  string
	Level string
	Msg   string
	Attrs map[string]string
}

// Attr returns the named attribute, or "" when absent.
func (r Record) Attr(key string) string {
	return r.Attrs[key]
}

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	// Ring of the last maxLines lines; next is the slot to overwrite.
	ring := make([]string, 0, maxLines)
	next := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(ring) < maxLines {
			ring = append(ring, scanner.Text())
			continue
		}
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	return append(ring[next:], ring[:next]...), nil
}

// Rejections returns the rejected-action records among the last maxLines
// lines of the log at path, oldest first.
func Rejections(path string, maxLines int) ([]Record, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	var out []Record
	for _, line := range lines {
		rec, ok := Parse(line)
		if ok && rec.Msg == rejectedMsg {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Parse decodes a slog text handler line (logfmt key=value pairs) into a
// Record. Lines that are not valid logfmt or carry no msg are rejected.
func Parse(line string) (Record, bool) {
	dec := logfmt.NewDecoder(strings.NewReader(line))
	if !dec.ScanRecord() {
		return Record{}, false
	}

	rec := Record{Attrs: make(map[string]string)}
	for dec.ScanKeyval() {
		value := string(dec.Value())
		switch key := string(dec.Key()); key {
		case "time":
			rec.Time = value
		case "level":
			rec.Level = value
		case "msg":
			rec.Msg = value
		default:
			rec.Attrs[key] = value
		}
	}
	if dec.Err() != nil || rec.Msg == "" {
		return Record{}, false
	}
	return rec, true
}
