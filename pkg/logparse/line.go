// Package logparse parses the log platform's line format and classifies
// parsed lines by risk.
//
// Lines follow the platform convention:
//
//	[F:<ip>|QQ:<qq>]<date> <time>|<LEVEL>||[<source>:<line>][<serial>][<module>][OPENID:<openid>]<content>
//
// Levels are INF (info), ER (error) and WRN (warning). Lines that do not
// match the convention are kept as raw entries so no content is lost.
package logparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gobwas/glob"
)

// Level is a log line severity as emitted by the platform.
type Level string

const (
	LevelInfo    Level = "INF"
	LevelError   Level = "ER"
	LevelWarning Level = "WRN"
	LevelUnknown Level = ""
)

// Severity orders levels for comparison; higher is more severe.
func (l Level) Severity() int {
	switch l {
	case LevelError:
		return 2
	case LevelWarning:
		return 1
	default:
		return 0
	}
}

// Line is a single parsed log line.
type Line struct {
	RemoteIP   string
	QQ         string
	Timestamp  time.Time
	Level      Level
	SourceFile string
	SourceLine int
	Serial     string
	Module     string
	OpenID     string
	Content    string

	// Raw is the original text; set for every line, parsed or not.
	Raw string

	// Parsed reports whether the line matched the platform convention.
	Parsed bool
}

var (
	lineRe = regexp.MustCompile(`^\[F:([^|\]]*)\|QQ:([^\]]*)\](\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\|(\w+)\|\|\[([^:\]]+):(\d+)\]\[([^\]]*)\]\[([^\]]*)\]\[OPENID:([^\]]*)\](.*)$`)

	// errorCodeRe matches negative business error codes such as -6712.
	errorCodeRe = regexp.MustCompile(`-\d{2,8}`)
)

const timestampLayout = "2006-01-02 15:04:05"

// ParseLine parses a single log line. Unmatched lines come back with
// Parsed=false and only Raw and Content set.
func ParseLine(raw string) Line {
	m := lineRe.FindStringSubmatch(raw)
	if m == nil {
		return Line{Raw: raw, Content: strings.TrimSpace(raw)}
	}

	srcLine, _ := strconv.Atoi(m[6])
	ts, _ := time.Parse(timestampLayout, m[3])

	return Line{
		RemoteIP:   m[1],
		QQ:         m[2],
		Timestamp:  ts,
		Level:      Level(m[4]),
		SourceFile: m[5],
		SourceLine: srcLine,
		Serial:     m[7],
		Module:     m[8],
		OpenID:     m[9],
		Content:    m[10],
		Raw:        raw,
		Parsed:     true,
	}
}

// Parse splits text into lines and parses each non-empty one.
func Parse(text string) []Line {
	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		lines = append(lines, ParseLine(raw))
	}
	return lines
}

// Errors returns the subset of lines at ER level.
func Errors(lines []Line) []Line {
	var out []Line
	for _, l := range lines {
		if l.Level == LevelError {
			out = append(out, l)
		}
	}
	return out
}

// Warnings returns the subset of lines at WRN level.
func Warnings(lines []Line) []Line {
	var out []Line
	for _, l := range lines {
		if l.Level == LevelWarning {
			out = append(out, l)
		}
	}
	return out
}

// FilterByModule returns the subset of lines whose module name matches the
// glob pattern, case-insensitively (e.g. "app.coupon.*", "*pay*").
func FilterByModule(lines []Line, pattern string) ([]Line, error) {
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid module pattern %q: %w", pattern, err)
	}

	var out []Line
	for _, l := range lines {
		if g.Match(strings.ToLower(l.Module)) {
			out = append(out, l)
		}
	}
	return out, nil
}

// ErrorCode extracts the first negative business error code from the line
// content, or empty when none is present.
func (l Line) ErrorCode() string {
	return errorCodeRe.FindString(l.Content)
}
