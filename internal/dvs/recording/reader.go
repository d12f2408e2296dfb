// Package recording reads DVS event recordings from a portable CSV dump.
//
// Native sensor formats (such as AEDAT4) are decoded upstream by vendor
// tooling; this package consumes the exported text form. A recording is a
// sequence of comma-separated rows
//
//	x,y,timestamp_us,polarity
//
// in temporal order, with polarity written as 0 or 1. Lines beginning with
// '#' are comments; the directive comment
//
//	# resolution <width> <height>
//
// declares the pixel dimensions of the stream and must precede the first
// event row unless the caller supplies the resolution out of band.
package recording

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/eventcam/wheeltrack/internal/dvs"
)

// Recording is a fully-loaded event stream with its declared resolution.
type Recording struct {
	Resolution dvs.Resolution
	Events     []dvs.Event
}

// Info returns a summary of the recording's event stream.
func (r *Recording) Info() dvs.StreamInfo {
	return dvs.Info(r.Events)
}

// Read parses an event dump from r. The resolution directive is optional;
// when absent the returned Recording has a zero Resolution and the caller
// must supply one before rasterization.
func Read(r io.Reader) (*Recording, error) {
	rec := &Recording{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if err := rec.parseDirective(line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}
		ev, err := parseEvent(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		rec.Events = append(rec.Events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	return rec, nil
}

// ReadFile opens and parses the recording at path.
func ReadFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	rec, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

func (rec *Recording) parseDirective(line string) error {
	fields := strings.Fields(strings.TrimPrefix(line, "#"))
	if len(fields) == 0 || fields[0] != "resolution" {
		// Plain comment.
		return nil
	}
	if len(fields) != 3 {
		return fmt.Errorf("malformed resolution directive %q", line)
	}
	w, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("failed to parse resolution width: %w", err)
	}
	h, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("failed to parse resolution height: %w", err)
	}
	res := dvs.Resolution{Width: w, Height: h}
	if err := res.Validate(); err != nil {
		return err
	}
	rec.Resolution = res
	return nil
}

func parseEvent(line string) (dvs.Event, error) {
	segments := strings.Split(line, ",")
	if len(segments) < 3 || len(segments) > 4 {
		return dvs.Event{}, fmt.Errorf("expected 3 or 4 fields, got %d", len(segments))
	}

	var ev dvs.Event
	var err error

	if ev.X, err = strconv.Atoi(strings.TrimSpace(segments[0])); err != nil {
		return dvs.Event{}, fmt.Errorf("failed to parse x: %w", err)
	}
	if ev.Y, err = strconv.Atoi(strings.TrimSpace(segments[1])); err != nil {
		return dvs.Event{}, fmt.Errorf("failed to parse y: %w", err)
	}
	if ev.TimestampMicros, err = strconv.ParseInt(strings.TrimSpace(segments[2]), 10, 64); err != nil {
		return dvs.Event{}, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	if len(segments) == 4 {
		p, err := strconv.Atoi(strings.TrimSpace(segments[3]))
		if err != nil {
			return dvs.Event{}, fmt.Errorf("failed to parse polarity: %w", err)
		}
		ev.Polarity = p != 0
	}
	return ev, nil
}
