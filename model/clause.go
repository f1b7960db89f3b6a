package model

import (
	"strings"
	"time"
)

// Clause is a reusable block of contract text with metadata.
type Clause struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Category   string    `json:"category"`
	Type       string    `json:"type"`
	Tags       []string  `json:"tags"`
	UsageCount int       `json:"usage_count"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Clause types
const (
	ClauseStandard  = "standard"
	ClauseCustom    = "custom"
	ClauseMandatory = "mandatory"
)

// ParseTags splits a comma-separated tag string, trimming whitespace and
// discarding empty entries: "a, b ,, c" parses to ["a" "b" "c"].
func ParseTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// AgeInDays derives how many whole days have passed since createdAt.
func AgeInDays(createdAt, now time.Time) int {
	if createdAt.IsZero() || createdAt.After(now) {
		return 0
	}
	return int(now.Sub(createdAt).Hours() / 24)
}
