package diag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Stage identifies the component that produced a warning.
type Stage string

const (
	StageTokenize  Stage = "tokenize"
	StageOperator  Stage = "operator"
	StagePath      Stage = "path"
	StageText      Stage = "text"
	StageCMap      Stage = "cmap"
	StageXObject   Stage = "xobject"
	StageTransform Stage = "transform"
	StageSource    Stage = "source"
)

// Warning describes a problem that was tolerated during processing.
type Warning struct {
	Stage    Stage
	Operator string // operator keyword, when the warning belongs to one
	Offset   int    // byte offset in the content stream, -1 if unknown
	Page     int    // 1-based page number, 0 if unknown
	Message  string
}

func (w Warning) String() string {
	var sb strings.Builder
	sb.WriteString(string(w.Stage))
	if w.Page > 0 {
		fmt.Fprintf(&sb, " page %d", w.Page)
	}
	if w.Operator != "" {
		fmt.Fprintf(&sb, " %s", w.Operator)
	}
	if w.Offset >= 0 {
		fmt.Fprintf(&sb, " @%d", w.Offset)
	}
	sb.WriteString(": ")
	sb.WriteString(w.Message)
	return sb.String()
}

// Sink receives warnings.
type Sink interface {
	Warn(w Warning)
}

// Collector is a Sink that keeps warnings in order. The zero value is ready
// to use and safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	warnings []Warning
}

// Warn records w.
func (c *Collector) Warn(w Warning) {
	c.mu.Lock()
	c.warnings = append(c.warnings, w)
	c.mu.Unlock()
}

// Warnings returns a copy of the recorded warnings.
func (c *Collector) Warnings() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Warning(nil), c.warnings...)
}

// Len returns the number of recorded warnings.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.warnings)
}

type discard struct{}

func (discard) Warn(Warning) {}

// Discard drops every warning.
var Discard Sink = discard{}

// SlogSink logs each warning through a structured logger.
type SlogSink struct {
	Logger *slog.Logger
	Level  slog.Level
}

// NewSlogSink returns a sink that logs at warn level. A nil logger uses
// slog.Default().
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{Logger: logger, Level: slog.LevelWarn}
}

// Warn logs w with its fields as attributes.
func (s *SlogSink) Warn(w Warning) {
	attrs := []slog.Attr{slog.String("stage", string(w.Stage))}
	if w.Page > 0 {
		attrs = append(attrs, slog.Int("page", w.Page))
	}
	if w.Operator != "" {
		attrs = append(attrs, slog.String("operator", w.Operator))
	}
	if w.Offset >= 0 {
		attrs = append(attrs, slog.Int("offset", w.Offset))
	}
	s.Logger.LogAttrs(context.Background(), s.Level, w.Message, attrs...)
}

type multi []Sink

func (m multi) Warn(w Warning) {
	for _, s := range m {
		s.Warn(w)
	}
}

// Multi returns a sink that forwards to every non-nil sink.
func Multi(sinks ...Sink) Sink {
	var out multi
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// OrDiscard returns s, or Discard when s is nil.
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}

type pageSink struct {
	page int
	next Sink
}

func (p pageSink) Warn(w Warning) {
	if w.Page == 0 {
		w.Page = p.page
	}
	p.next.Warn(w)
}

// ForPage stamps warnings that carry no page number with page.
func ForPage(s Sink, page int) Sink {
	return pageSink{page: page, next: OrDiscard(s)}
}

// Format joins warnings into a human-readable multi-line string.
func Format(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
