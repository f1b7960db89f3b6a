package view

import (
	"time"

	"github.com/Ilhamsafeek/panvel-final-sub001/model"
)

// Notice is a dismissible user-facing message.
type Notice struct {
	Kind        string // info, warning, error
	Message     string
	Dismissible bool
}

// Indicator is the verification indicator in one of its terminal states.
type Indicator struct {
	State      model.IndicatorState
	ContractID string
	Message    string
	Tamper     *TamperDetail // set only in the tampered state
}

// TamperDetail feeds the blocking comparison modal.
type TamperDetail struct {
	StoredHash  string // already truncated for display
	CurrentHash string
	DetectedAt  time.Time
	AuditLogURL string
}

// NewIndicator maps a verification result into the indicator view, truncating
// hashes to the configured display length.
func NewIndicator(contractID string, result *model.VerificationResult, hashLen int) Indicator {
	if result.Verified {
		return Indicator{
			State:      model.IndicatorVerified,
			ContractID: contractID,
			Message:    "Document integrity verified",
		}
	}
	return Indicator{
		State:      model.IndicatorTampered,
		ContractID: contractID,
		Message:    "Document hash mismatch detected",
		Tamper: &TamperDetail{
			StoredHash:  TruncateHash(result.StoredHash, hashLen),
			CurrentHash: TruncateHash(result.CurrentHash, hashLen),
			DetectedAt:  result.DetectedAt,
			AuditLogURL: "/contracts/" + contractID + "/audit-log",
		},
	}
}

// Certificate is the read-only certificate-detail view.
type Certificate struct {
	ContractID      string
	DocumentHash    string
	TransactionHash string
	BlockNumber     int64
	Network         string
	Timestamp       time.Time
	Mode            string
}

// ClauseCard is one rendered clause in the library grid.
type ClauseCard struct {
	ID         string
	Code       string
	Title      string
	Text       string
	Category   string
	Type       string
	Icon       string
	Tags       []string
	UsageCount int
	AgeDays    int
	IsActive   bool
}

// Defaults applied when a record arrives with missing presentation fields.
const (
	defaultClauseIcon     = "file-text"
	defaultClauseCategory = "general"
)

var categoryIcons = map[string]string{
	"payment":      "credit-card",
	"liability":    "shield",
	"termination":  "x-circle",
	"confidential": "lock",
}

// NewClauseCard maps a raw clause record into its display-ready shape.
func NewClauseCard(clause model.Clause, now time.Time) ClauseCard {
	category := clause.Category
	if category == "" {
		category = defaultClauseCategory
	}
	clauseType := clause.Type
	if clauseType == "" {
		clauseType = model.ClauseStandard
	}
	icon, ok := categoryIcons[category]
	if !ok {
		icon = defaultClauseIcon
	}
	return ClauseCard{
		ID:         clause.ID,
		Code:       clause.Code,
		Title:      clause.Title,
		Text:       clause.Text,
		Category:   category,
		Type:       clauseType,
		Icon:       icon,
		Tags:       clause.Tags,
		UsageCount: clause.UsageCount,
		AgeDays:    model.AgeInDays(clause.CreatedAt, now),
		IsActive:   clause.IsActive,
	}
}

// ClauseList is the library grid, its empty state, and the filter badge.
type ClauseList struct {
	Cards             []ClauseCard
	Search            string
	Category          string
	SortBy            string
	ActiveFilterCount int
}

// Empty reports whether the grid should give way to the empty state. The
// empty state is distinct from loading: it is only rendered after a completed
// fetch.
func (l ClauseList) Empty() bool {
	return len(l.Cards) == 0
}

// ClauseForm is the shared create/edit modal. Edit mode prefills from the
// last rendered list and locks the server-assigned code.
type ClauseForm struct {
	Mode         string // "create" or "edit"
	ID           string
	Code         string
	CodeReadOnly bool
	Title        string
	Text         string
	Category     string
	Type         string
	TagsText     string // comma-separated, parsed on submit
	IsActive     bool
	Error        string
}

// CategoryCounts patches the badge labels; served best-effort.
type CategoryCounts struct {
	Total      int
	Categories map[string]int
}

// CreationOptions is the wizard's template catalog for one profile.
type CreationOptions struct {
	DraftID     string
	ProfileType string
	Categories  []model.TemplateCategory
	Methods     []string
}

// GenerationPreview shows the AI-generated body and opens the save dialog.
type GenerationPreview struct {
	DraftID        string
	Title          string
	Body           string
	OpenSaveDialog bool
}

// Save outcome statuses. Partial means the contract record exists but the
// content attach failed; the record is not rolled back.
const (
	SaveStatusSaved   = "saved"
	SaveStatusPartial = "partial"
)

// SaveOutcome reports the two-step save result.
type SaveOutcome struct {
	Status     string
	ContractID string
	Message    string
	EditorURL  string
}

// ProjectOptions is the association select plus the inline creation modal.
type ProjectOptions struct {
	DraftID         string
	Projects        []model.Project
	SelectedID      string
	OpenCreateModal bool
}

// UploadOutcome shows the upstream analysis results and the editor redirect.
type UploadOutcome struct {
	ContractID string
	Analysis   map[string]any
	EditorURL  string
}
