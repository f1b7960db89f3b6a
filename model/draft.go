package model

import (
	"strings"
	"time"
)

// Draft is the in-progress contract held server-side while the creation
// wizard runs. It is created empty when the wizard page renders, populated by
// the AI-generation step, and discarded after a successful save.
type Draft struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	ProfileType     string           `json:"profile_type"`
	Method          string           `json:"method"`
	TemplateID      string           `json:"template_id,omitempty"`
	GeneratedBody   string           `json:"generated_body,omitempty"`
	SelectedClauses []SelectedClause `json:"selected_clauses,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// SelectedClause is one checked clause option contributed to AI generation.
type SelectedClause struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// HasBody reports whether generated body content exists. A draft without a
// body must never be saved.
func (d *Draft) HasBody() bool {
	return strings.TrimSpace(d.GeneratedBody) != ""
}

// Profile types filter the template catalog and clause options.
const (
	ProfileClient        = "client"
	ProfileConsultant    = "consultant"
	ProfileContractor    = "contractor"
	ProfileSubContractor = "sub_contractor"
)

// ValidProfileType reports whether s is a known profile type.
func ValidProfileType(s string) bool {
	switch s {
	case ProfileClient, ProfileConsultant, ProfileContractor, ProfileSubContractor:
		return true
	}
	return false
}

// Creation methods
const (
	MethodTemplate = "template"
	MethodUpload   = "upload"
	MethodAI       = "ai"
)

// ValidMethod reports whether s is a known creation method.
func ValidMethod(s string) bool {
	switch s {
	case MethodTemplate, MethodUpload, MethodAI:
		return true
	}
	return false
}
