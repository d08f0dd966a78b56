// Package model defines the lead record shared by intake, scoring and outreach.
package model

import "strings"

// Field defaults applied when a source leaves a value blank.
const (
	UnknownName     = "Unknown"
	UnknownIndustry = "Unknown"
	StatusNew       = "New"
)

// RowWidth is the number of columns written to the sink per lead.
const RowWidth = 6

// StatusColumn is the 0-based column index of the status in a sink row.
const StatusColumn = 3

// Lead is a prospective contact to be scored and possibly emailed.
type Lead struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Industry string `json:"organization_industry"`
	Status   string `json:"status"`
	Score    int    `json:"score"`
	JobTitle string `json:"job_title,omitempty"` // never populated by file or email intake
}

// NewLead builds a Lead, applying the Unknown/New defaults to blank fields.
// A negative score is clamped to 0.
func NewLead(name, email, industry, status string, score int) Lead {
	l := Lead{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Industry: strings.TrimSpace(industry),
		Status:   strings.TrimSpace(status),
		Score:    score,
	}
	if l.Name == "" {
		l.Name = UnknownName
	}
	if l.Industry == "" {
		l.Industry = UnknownIndustry
	}
	if l.Status == "" {
		l.Status = StatusNew
	}
	if l.Score < 0 {
		l.Score = 0
	}
	return l
}

// HasEmail reports whether the lead can receive outreach.
func (l Lead) HasEmail() bool {
	return l.Email != ""
}

// Row returns the sink row for the lead: name, email, industry, status,
// score and a blank trailing column.
func (l Lead) Row() []any {
	return []any{l.Name, l.Email, l.Industry, l.Status, l.Score, ""}
}
