package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event
type EventType string

const (
	EventStage       EventType = "stage"
	EventLoad        EventType = "load"
	EventRecipe      EventType = "recipe"
	EventIngredients EventType = "ingredients"
	EventInteraction EventType = "interaction"
	EventAnalyze     EventType = "analyze"
	EventSkip        EventType = "skip"
	EventError       EventType = "error"
)

// EventLevel represents the severity level
type EventLevel string

const (
	LevelDebug   EventLevel = "debug"
	LevelInfo    EventLevel = "info"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

// levelPriority maps event levels to numeric priorities for comparison
var levelPriority = map[EventLevel]int{
	LevelDebug:   0,
	LevelInfo:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// Event represents a single event in the build
type Event struct {
	Timestamp time.Time         `json:"ts"`
	RunID     string            `json:"run_id,omitempty"`
	Level     EventLevel        `json:"level"`
	Event     EventType         `json:"event"`
	Stage     string            `json:"stage,omitempty"`
	Source    string            `json:"source,omitempty"`
	Path      string            `json:"path,omitempty"`
	Line      int               `json:"line,omitempty"`
	Rows      int64             `json:"rows,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Duration  int64             `json:"duration_ms,omitempty"` // in milliseconds
	Error     string            `json:"error,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// EventLogger writes events to a JSONL file
type EventLogger struct {
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	path     string
	runID    string
	minLevel EventLevel
}

// NewEventLogger creates a new event logger with a minimum log level.
// Every event written through it carries the same random run id.
func NewEventLogger(outputDir string, minLevel EventLevel) (*EventLogger, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	runID := uuid.NewString()
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("build-%s-%s.jsonl", timestamp, runID[:8])
	path := filepath.Join(outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	return &EventLogger{
		file:     file,
		encoder:  json.NewEncoder(file),
		path:     path,
		runID:    runID,
		minLevel: minLevel,
	}, nil
}

// Log writes an event to the JSONL file
func (l *EventLogger) Log(event *Event) error {
	if l == nil || l.file == nil {
		return nil // Silently ignore if logger not initialized
	}

	if levelPriority[event.Level] < levelPriority[l.minLevel] {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.RunID == "" {
		event.RunID = l.runID
	}

	if err := l.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return nil
}

// LogStage records a finished build stage
func (l *EventLogger) LogStage(stage string, rows int64, duration time.Duration) error {
	return l.Log(&Event{
		Level:    LevelInfo,
		Event:    EventStage,
		Stage:    stage,
		Rows:     rows,
		Duration: duration.Milliseconds(),
	})
}

// LogLoad records how many rows were read from a CSV file
func (l *EventLogger) LogLoad(path string, rows int64, limit int) error {
	return l.Log(&Event{
		Level: LevelInfo,
		Event: EventLoad,
		Path:  path,
		Rows:  rows,
		Extra: map[string]string{
			"limit": fmt.Sprintf("%d", limit),
		},
	})
}

// LogSkippedRecipe records a recipe row that was not inserted
func (l *EventLogger) LogSkippedRecipe(line int, reason string) error {
	return l.Log(&Event{
		Level:  LevelWarning,
		Event:  EventRecipe,
		Line:   line,
		Reason: reason,
	})
}

// LogInteractions records the outcome of one interaction log
func (l *EventLogger) LogInteractions(source, path string, inserted, dropped int64) error {
	return l.Log(&Event{
		Level:  LevelInfo,
		Event:  EventInteraction,
		Source: source,
		Path:   path,
		Rows:   inserted,
		Extra: map[string]string{
			"dropped": fmt.Sprintf("%d", dropped),
		},
	})
}

// LogSkippedSource records an optional input that was not present
func (l *EventLogger) LogSkippedSource(source, path string) error {
	return l.Log(&Event{
		Level:  LevelWarning,
		Event:  EventSkip,
		Source: source,
		Path:   path,
		Reason: "file not found",
	})
}

// LogError logs an error event
func (l *EventLogger) LogError(event EventType, path string, err error) error {
	return l.Log(&Event{
		Level: LevelError,
		Event: event,
		Path:  path,
		Error: err.Error(),
	})
}

// Close closes the event log file
func (l *EventLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.file.Close()
}

// Path returns the path to the event log file
func (l *EventLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// RunID returns the id stamped on every event of this run
func (l *EventLogger) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// NullLogger returns a no-op event logger
func NullLogger() *EventLogger {
	return nil
}
