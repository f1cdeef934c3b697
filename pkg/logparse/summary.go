package logparse

import (
	"fmt"
	"sort"
	"strings"
)

// Summary aggregates what the parser found in a log payload.
type Summary struct {
	Total      int
	ErrorCount int
	WarnCount  int
	InfoCount  int

	// ErrorCodes are the distinct business error codes found in ER lines,
	// in first-seen order.
	ErrorCodes []string

	// Modules maps module name to the number of ER/WRN lines it produced.
	Modules map[string]int

	// FirstError is the first ER line, if any.
	FirstError *Line
}

// Summarize walks parsed lines and collects counts, error codes and the
// modules involved in errors and warnings.
func Summarize(lines []Line) Summary {
	s := Summary{Modules: make(map[string]int)}
	seenCodes := make(map[string]bool)

	for i, line := range lines {
		s.Total++
		switch line.Level {
		case LevelError:
			s.ErrorCount++
			if s.FirstError == nil {
				s.FirstError = &lines[i]
			}
			if code := line.ErrorCode(); code != "" && !seenCodes[code] {
				seenCodes[code] = true
				s.ErrorCodes = append(s.ErrorCodes, code)
			}
			if line.Module != "" {
				s.Modules[line.Module]++
			}
		case LevelWarning:
			s.WarnCount++
			if line.Module != "" {
				s.Modules[line.Module]++
			}
		case LevelInfo:
			s.InfoCount++
		}
	}

	return s
}

// TopModule returns the module with the most error/warning lines, breaking
// ties alphabetically. Empty when no module was involved.
func (s Summary) TopModule() string {
	var names []string
	for name := range s.Modules {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if s.Modules[names[i]] != s.Modules[names[j]] {
			return s.Modules[names[i]] > s.Modules[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// String renders a short human-readable digest.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d lines (%d errors, %d warnings, %d info)", s.Total, s.ErrorCount, s.WarnCount, s.InfoCount)
	if len(s.ErrorCodes) > 0 {
		fmt.Fprintf(&b, ", error codes: %s", strings.Join(s.ErrorCodes, ", "))
	}
	if top := s.TopModule(); top != "" {
		fmt.Fprintf(&b, ", top module: %s", top)
	}
	return b.String()
}
