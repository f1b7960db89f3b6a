package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Ilhamsafeek/panvel-final-sub001/model"
	"github.com/Ilhamsafeek/panvel-final-sub001/pkg/flow"
	"github.com/Ilhamsafeek/panvel-final-sub001/pkg/logger"
	"github.com/Ilhamsafeek/panvel-final-sub001/service"
	"github.com/Ilhamsafeek/panvel-final-sub001/view"
	"github.com/gin-gonic/gin"
)

// ClauseHandler serves the clause-library page and its fragments. Keystroke
// bursts from the search box are collapsed by the debouncer, and a sequencer
// discards responses that a newer request has already superseded.
type ClauseHandler struct {
	client   *service.Client
	debounce *flow.Debouncer
	seq      flow.Sequencer
	pageSize int

	mu        sync.Mutex
	lastQuery service.ClauseQuery
	snapshot  map[string]model.Clause // last rendered clauses, for edit prefill
}

func NewClauseHandler(client *service.Client, debounceWindow time.Duration, pageSize int) *ClauseHandler {
	return &ClauseHandler{
		client:   client,
		debounce: flow.NewDebouncer(debounceWindow),
		pageSize: pageSize,
		snapshot: make(map[string]model.Clause),
	}
}

// Page renders the library shell.
func (h *ClauseHandler) Page(c *gin.Context) {
	c.HTML(http.StatusOK, "page_clauses.tmpl", nil)
}

func (h *ClauseHandler) parseQuery(c *gin.Context) service.ClauseQuery {
	q := service.ClauseQuery{
		PageSize:      h.pageSize,
		SortBy:        c.Query("sort_by"),
		Category:      c.Query("category"),
		Search:        strings.TrimSpace(c.Query("search")),
		Type:          c.Query("type"),
		CreatedAfter:  c.Query("created_after"),
		CreatedBefore: c.Query("created_before"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		q.Page = page
	}
	if minUsage, err := strconv.Atoi(c.Query("min_usage")); err == nil {
		q.MinUsage = minUsage
	}
	return q
}

// List renders one filtered page of the clause grid. Only the last request of
// an input burst reaches the upstream; earlier ones return 204 so the swap
// they would have made is skipped. A response that lost the race to a newer
// request is likewise discarded.
func (h *ClauseHandler) List(c *gin.Context) {
	q := h.parseQuery(c)

	if err := h.debounce.Join(c.Request.Context()); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		c.Status(http.StatusNoContent)
		return
	}

	token := h.seq.Begin()
	clauses, err := h.client.ListClauses(c.Request.Context(), q)
	if !h.seq.Current(token) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		logger.WithContext(c.Request.Context()).Warn("clause list fetch failed",
			"search", q.Search,
			"error", err,
		)
		renderNotice(c, "error", "Could not load clauses. Please retry.")
		return
	}

	h.mu.Lock()
	h.lastQuery = q
	h.snapshot = make(map[string]model.Clause, len(clauses))
	for _, clause := range clauses {
		h.snapshot[clause.ID] = clause
	}
	h.mu.Unlock()

	h.renderGrid(c, clauses, q)
}

func (h *ClauseHandler) renderGrid(c *gin.Context, clauses []model.Clause, q service.ClauseQuery) {
	now := time.Now()
	cards := make([]view.ClauseCard, 0, len(clauses))
	for _, clause := range clauses {
		cards = append(cards, view.NewClauseCard(clause, now))
	}
	c.HTML(http.StatusOK, "clause_grid.tmpl", view.ClauseList{
		Cards:             cards,
		Search:            q.Search,
		Category:          q.Category,
		SortBy:            q.SortBy,
		ActiveFilterCount: q.ActiveFilterCount(),
	})
}

// refreshList refetches the last rendered query after a mutation so the grid
// reflects the change.
func (h *ClauseHandler) refreshList(c *gin.Context) {
	h.mu.Lock()
	q := h.lastQuery
	h.mu.Unlock()
	if q.PageSize == 0 {
		q.PageSize = h.pageSize
	}

	clauses, err := h.client.ListClauses(c.Request.Context(), q)
	if err != nil {
		logger.WithContext(c.Request.Context()).Warn("clause list refresh failed", "error", err)
		renderNotice(c, "warning", "The change was applied, but the list could not be refreshed. Reload the page.")
		return
	}

	h.mu.Lock()
	h.snapshot = make(map[string]model.Clause, len(clauses))
	for _, clause := range clauses {
		h.snapshot[clause.ID] = clause
	}
	h.mu.Unlock()

	h.renderGrid(c, clauses, q)
}

// Counts patches the per-category badges. Best-effort: on failure the
// existing badges stay as they are.
func (h *ClauseHandler) Counts(c *gin.Context) {
	stats, err := h.client.Statistics(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context()).Debug("clause statistics fetch failed", "error", err)
		c.Status(http.StatusNoContent)
		return
	}
	c.HTML(http.StatusOK, "clause_counts.tmpl", view.CategoryCounts{
		Total:      stats.TotalClauses,
		Categories: stats.Categories,
	})
}

// NewForm opens the creation modal with defaults.
func (h *ClauseHandler) NewForm(c *gin.Context) {
	c.HTML(http.StatusOK, "clause_form.tmpl", view.ClauseForm{
		Mode:     "create",
		Type:     model.ClauseStandard,
		IsActive: true,
	})
}

// EditForm opens the edit modal prefilled from the last rendered list. The
// server-assigned code is shown read-only.
func (h *ClauseHandler) EditForm(c *gin.Context) {
	id := c.Param("id")

	h.mu.Lock()
	clause, ok := h.snapshot[id]
	h.mu.Unlock()
	if !ok {
		renderNotice(c, "error", "This clause is no longer in the list. Reload and try again.")
		return
	}

	c.HTML(http.StatusOK, "clause_form.tmpl", view.ClauseForm{
		Mode:         "edit",
		ID:           clause.ID,
		Code:         clause.Code,
		CodeReadOnly: true,
		Title:        clause.Title,
		Text:         clause.Text,
		Category:     clause.Category,
		Type:         clause.Type,
		TagsText:     strings.Join(clause.Tags, ", "),
		IsActive:     clause.IsActive,
	})
}

func clauseFormFromPost(c *gin.Context) (service.ClauseForm, view.ClauseForm) {
	vm := view.ClauseForm{
		ID:       c.Param("id"),
		Code:     c.PostForm("code"),
		Title:    strings.TrimSpace(c.PostForm("title")),
		Text:     strings.TrimSpace(c.PostForm("text")),
		Category: c.PostForm("category"),
		Type:     c.PostForm("type"),
		TagsText: c.PostForm("tags"),
		IsActive: c.PostForm("is_active") != "",
	}
	form := service.ClauseForm{
		Code:     vm.Code,
		Title:    vm.Title,
		Text:     vm.Text,
		Category: vm.Category,
		Type:     vm.Type,
		Tags:     model.ParseTags(vm.TagsText),
		IsActive: vm.IsActive,
	}
	return form, vm
}

// Create validates and creates a new clause, then refreshes the grid.
// Validation failures re-render the modal without touching the network.
func (h *ClauseHandler) Create(c *gin.Context) {
	form, vm := clauseFormFromPost(c)
	vm.Mode = "create"
	if form.Title == "" || form.Text == "" {
		vm.Error = "Title and text are required."
		c.HTML(http.StatusOK, "clause_form.tmpl", vm)
		return
	}

	if _, err := h.client.CreateClause(c.Request.Context(), form); err != nil {
		logger.WithContext(c.Request.Context()).Warn("clause creation failed", "error", err)
		vm.Error = "Could not create the clause: " + upstreamMessage(err)
		c.HTML(http.StatusOK, "clause_form.tmpl", vm)
		return
	}

	h.refreshList(c)
}

// Update validates and updates an existing clause, then refreshes the grid.
func (h *ClauseHandler) Update(c *gin.Context) {
	form, vm := clauseFormFromPost(c)
	vm.Mode = "edit"
	vm.CodeReadOnly = true
	if form.Title == "" || form.Text == "" {
		vm.Error = "Title and text are required."
		c.HTML(http.StatusOK, "clause_form.tmpl", vm)
		return
	}

	if _, err := h.client.UpdateClause(c.Request.Context(), vm.ID, form); err != nil {
		logger.WithContext(c.Request.Context()).Warn("clause update failed",
			"clause_id", vm.ID,
			"error", err,
		)
		vm.Error = "Could not update the clause: " + upstreamMessage(err)
		c.HTML(http.StatusOK, "clause_form.tmpl", vm)
		return
	}

	h.refreshList(c)
}

// Delete removes a clause after explicit confirmation, then refreshes the
// grid. Without confirm=true nothing reaches the upstream.
func (h *ClauseHandler) Delete(c *gin.Context) {
	if c.Query("confirm") != "true" {
		renderNotice(c, "warning", "Deletion requires confirmation.")
		return
	}

	id := c.Param("id")
	if err := h.client.DeleteClause(c.Request.Context(), id); err != nil {
		logger.WithContext(c.Request.Context()).Warn("clause deletion failed",
			"clause_id", id,
			"error", err,
		)
		renderNotice(c, "error", "Could not delete the clause: "+upstreamMessage(err))
		return
	}

	h.refreshList(c)
}

// Filters opens the secondary-filter modal carrying the current primary
// filter state so applying it preserves search, category and sort.
func (h *ClauseHandler) Filters(c *gin.Context) {
	q := h.parseQuery(c)
	c.HTML(http.StatusOK, "filter_modal.tmpl", view.ClauseList{
		Search:            q.Search,
		Category:          q.Category,
		SortBy:            q.SortBy,
		ActiveFilterCount: q.ActiveFilterCount(),
	})
}
