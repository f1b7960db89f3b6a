package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Ilhamsafeek/panvel-final-sub001/model"
)

// ClauseQuery is the combined primary (search/category/sort) and secondary
// (filter modal) filter state for one clause-list fetch.
type ClauseQuery struct {
	Page     int
	PageSize int
	SortBy   string
	Category string
	Search   string

	// Secondary filters from the filter modal
	Type          string
	MinUsage      int
	CreatedAfter  string
	CreatedBefore string
}

// ActiveFilterCount counts the secondary filters currently set, for the
// filter modal's badge.
func (q ClauseQuery) ActiveFilterCount() int {
	count := 0
	if q.Type != "" {
		count++
	}
	if q.MinUsage > 0 {
		count++
	}
	if q.CreatedAfter != "" {
		count++
	}
	if q.CreatedBefore != "" {
		count++
	}
	return count
}

func (q ClauseQuery) values() url.Values {
	v := url.Values{}
	page := q.Page
	if page <= 0 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.MinUsage > 0 {
		v.Set("min_usage", strconv.Itoa(q.MinUsage))
	}
	if q.CreatedAfter != "" {
		v.Set("created_after", q.CreatedAfter)
	}
	if q.CreatedBefore != "" {
		v.Set("created_before", q.CreatedBefore)
	}
	return v
}

type clauseListResponse struct {
	Clauses []model.Clause `json:"clauses"`
}

// ListClauses fetches one filtered, sorted page of clauses.
func (c *Client) ListClauses(ctx context.Context, q ClauseQuery) ([]model.Clause, error) {
	path := "/api/clause-library/clauses?" + q.values().Encode()

	var resp clauseListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Clauses, nil
}

// ClauseStatistics is the aggregate used to patch category count badges.
type ClauseStatistics struct {
	TotalClauses int            `json:"total_clauses"`
	Categories   map[string]int `json:"categories"`
}

type clauseStatisticsResponse struct {
	Statistics ClauseStatistics `json:"statistics"`
}

// Statistics fetches per-category clause counts. Callers treat failures as
// best-effort: stale badges, no error surfaced.
func (c *Client) Statistics(ctx context.Context) (*ClauseStatistics, error) {
	var resp clauseStatisticsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/clause-library/statistics", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Statistics, nil
}

// ClauseForm carries the create/edit modal fields. Code is server-assigned
// and immutable after creation; it is ignored on update.
type ClauseForm struct {
	Code     string   `json:"code,omitempty"`
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	Category string   `json:"category,omitempty"`
	Type     string   `json:"type,omitempty"`
	Tags     []string `json:"tags"`
	IsActive bool     `json:"is_active"`
}

// CreateClause creates a new reusable clause.
func (c *Client) CreateClause(ctx context.Context, form ClauseForm) (*model.Clause, error) {
	var clause model.Clause
	if err := c.doJSON(ctx, http.MethodPost, "/api/clause-library/clauses", form, &clause); err != nil {
		return nil, err
	}
	return &clause, nil
}

// UpdateClause updates an existing clause.
func (c *Client) UpdateClause(ctx context.Context, id string, form ClauseForm) (*model.Clause, error) {
	form.Code = "" // immutable post-creation
	path := "/api/clause-library/clauses/" + url.PathEscape(id)

	var clause model.Clause
	if err := c.doJSON(ctx, http.MethodPut, path, form, &clause); err != nil {
		return nil, err
	}
	return &clause, nil
}

// DeleteClause deletes a clause.
func (c *Client) DeleteClause(ctx context.Context, id string) error {
	path := "/api/clause-library/clauses/" + url.PathEscape(id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
