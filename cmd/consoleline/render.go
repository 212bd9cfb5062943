package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Philipp01105/consoleline/core"
	"github.com/Philipp01105/consoleline/formatter"
	"github.com/Philipp01105/consoleline/outputstyle"
)

const maxLineSize = 4 << 20

// errNoMatch is returned for glob patterns that match no file.
var errNoMatch = errors.New("no files match")

// lineRecord is the decoded form of one input line.
type lineRecord struct {
	Datetime  string   `yaml:"datetime"`
	Level     string   `yaml:"level"`
	LevelName string   `yaml:"level_name"`
	Channel   string   `yaml:"channel"`
	Message   string   `yaml:"message"`
	Context   core.Map `yaml:"context"`
	Extra     core.Map `yaml:"extra"`
}

// datetime layouts tried in order.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999-0700",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

// numericLevels maps the RFC 5424 style numeric codes onto severities.
var numericLevels = map[int]core.Level{
	100: core.DebugLevel,
	200: core.InfoLevel,
	250: core.NoticeLevel,
	300: core.WarningLevel,
	400: core.ErrorLevel,
	500: core.CriticalLevel,
	550: core.AlertLevel,
	600: core.EmergencyLevel,
}

func parseLevel(lr lineRecord) (core.Level, error) {
	if lr.LevelName != "" {
		return core.ParseLevel(lr.LevelName)
	}
	if lr.Level == "" {
		return core.InfoLevel, nil
	}
	if n, err := strconv.Atoi(lr.Level); err == nil {
		if l, ok := numericLevels[n]; ok {
			return l, nil
		}
		return 0, fmt.Errorf("%w: %d", core.ErrUnknownLevel, n)
	}
	return core.ParseLevel(lr.Level)
}

func parseDatetime(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range datetimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// decodeLine turns one JSON (or YAML flow) line into a record.
func decodeLine(line string, now func() time.Time) (core.Record, error) {
	var lr lineRecord
	if err := yaml.Unmarshal([]byte(line), &lr); err != nil {
		return core.Record{}, fmt.Errorf("failed to decode record: %w", err)
	}

	level, err := parseLevel(lr)
	if err != nil {
		return core.Record{}, err
	}

	ts := now()
	if lr.Datetime != "" {
		if ts, err = parseDatetime(lr.Datetime); err != nil {
			return core.Record{}, fmt.Errorf("invalid datetime %q: %w", lr.Datetime, err)
		}
	}

	return core.Record{
		Time:    ts,
		Level:   level,
		Channel: lr.Channel,
		Message: lr.Message,
		Context: lr.Context,
		Extra:   lr.Extra,
	}, nil
}

// expandArgs resolves glob patterns. Plain paths and "-" pass through.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if arg == "-" || !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w %q", errNoMatch, arg)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

// renderer formats records from one or more inputs.
type renderer struct {
	formatter formatter.Formatter
	out       io.Writer
	decorated bool
	diag      *slog.Logger
	keepGoing bool
	now       func() time.Time
}

func (r *renderer) run(args []string, stdin io.Reader) error {
	if len(args) == 0 {
		return r.renderReader("-", stdin)
	}

	paths, err := expandArgs(args)
	if err != nil {
		return err
	}

	var errs error
	for _, path := range paths {
		if err := r.renderPath(path, stdin); err != nil {
			if !r.keepGoing {
				return err
			}
			r.diag.Error("skipping {path}", "path", path, "error", err.Error())
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (r *renderer) renderPath(path string, stdin io.Reader) error {
	if path == "-" {
		return r.renderReader(path, stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.renderReader(path, f)
}

// renderReader decodes every line of in and writes the formatted batch.
func (r *renderer) renderReader(name string, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var records []core.Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rec, err := decodeLine(line, r.now)
		if err != nil {
			err = fmt.Errorf("%s:%d: %w", name, lineNo, err)
			if !r.keepGoing {
				return err
			}
			r.diag.Warn("skipping line {line} of {file}", "file", name, "line", lineNo, "error", err.Error())
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	for _, line := range r.formatter.FormatBatch(records) {
		if r.decorated {
			line = outputstyle.Render(line, true)
		} else {
			line = outputstyle.Strip(line)
		}
		if _, err := io.WriteString(r.out, line); err != nil {
			return err
		}
	}
	return nil
}
