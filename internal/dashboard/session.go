// Package dashboard orchestrates intake, scoring and outreach for one
// interactive session and renders the lead table for the terminal and web
// front ends.
package dashboard

import (
	"strings"

	"github.com/google/uuid"

	"github.com/sells-group/leadflow/internal/model"
)

// EmptyPlaceholder is shown when the session holds no leads.
const EmptyPlaceholder = "No leads loaded yet."

// Message levels.
const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Input is what the user supplied for the next Load.
type Input struct {
	FileName string
	File     []byte
	Emails   string
}

// HasFile reports whether a lead file was supplied.
func (in Input) HasFile() bool {
	return in.FileName != "" || len(in.File) > 0
}

// Message is a user-visible notice produced by an operation.
type Message struct {
	Level string
	Text  string
}

// Session is the per-user state held between interactions.
type Session struct {
	ID         uuid.UUID
	Input      Input
	Industries []string
	Leads      []model.Lead
	Messages   []Message
}

// NewSession returns an empty session with a fresh ID.
func NewSession() *Session {
	return &Session{ID: uuid.New()}
}

func (s *Session) info(text string) {
	s.Messages = append(s.Messages, Message{Level: LevelInfo, Text: text})
}

func (s *Session) warn(text string) {
	s.Messages = append(s.Messages, Message{Level: LevelWarn, Text: text})
}

func (s *Session) fail(text string) {
	s.Messages = append(s.Messages, Message{Level: LevelError, Text: text})
}

// ParseIndustries splits a comma-separated industry selection, dropping
// blank entries.
func ParseIndustries(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Row is one rendered lead.
type Row struct {
	Name     string
	Email    string
	Industry string
	Status   string
	Score    int
}

// View is the rendered state of a session.
type View struct {
	SessionID   string
	Industries  []string
	Rows        []Row
	Placeholder string
	Messages    []Message
}

// Empty reports whether the view has no lead rows.
func (v View) Empty() bool {
	return len(v.Rows) == 0
}

// Report summarises one send run.
type Report struct {
	RunID     uuid.UUID
	Attempted int
	Sent      int
	Failed    int
	Skipped   int
}
