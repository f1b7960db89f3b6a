package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Ilhamsafeek/panvel-final-sub001/model"
	"github.com/Ilhamsafeek/panvel-final-sub001/pkg/logger"
	"github.com/Ilhamsafeek/panvel-final-sub001/service"
	"github.com/Ilhamsafeek/panvel-final-sub001/view"
	"github.com/gin-gonic/gin"
)

// clauseLabels maps the wizard's clause checkbox keys to the human labels
// forwarded to generation.
var clauseLabels = map[string]string{
	"payment_terms":   "Payment Terms",
	"confidentiality": "Confidentiality",
	"termination":     "Termination",
	"liability":       "Limitation of Liability",
}

type CreationHandler struct {
	client *service.Client
	drafts *service.DraftStore
}

func NewCreationHandler(client *service.Client, drafts *service.DraftStore) *CreationHandler {
	return &CreationHandler{
		client: client,
		drafts: drafts,
	}
}

// Page renders the wizard shell and registers a fresh draft for it.
func (h *CreationHandler) Page(c *gin.Context) {
	draft := h.drafts.Create(model.ProfileClient)
	c.HTML(http.StatusOK, "page_wizard.tmpl", gin.H{
		"DraftID":     draft.ID,
		"ProfileType": draft.ProfileType,
	})
}

// Options renders the template catalog for the selected profile. Changing the
// profile invalidates any template picked from the previous catalog.
func (h *CreationHandler) Options(c *gin.Context) {
	draftID := c.Query("draft_id")
	profileType := c.DefaultQuery("profile_type", model.ProfileClient)
	if !model.ValidProfileType(profileType) {
		renderNotice(c, "error", "Unknown profile type.")
		return
	}
	if draftID != "" {
		h.drafts.SetProfile(draftID, profileType)
	}

	opts, err := h.client.CreationOptions(c.Request.Context(), profileType)
	if err != nil {
		logger.WithContext(c.Request.Context()).Warn("creation options fetch failed",
			"profile_type", profileType,
			"error", err,
		)
		renderNotice(c, "error", "Could not load templates. Please retry.")
		return
	}

	c.HTML(http.StatusOK, "creation_options.tmpl", view.CreationOptions{
		DraftID:     draftID,
		ProfileType: profileType,
		Categories:  opts.TemplateCategories,
		Methods:     opts.CreationMethods,
	})
}

// FromTemplate creates a contract directly from the selected template.
func (h *CreationHandler) FromTemplate(c *gin.Context) {
	templateID := c.PostForm("template_id")
	if templateID == "" {
		renderNotice(c, "error", "Select a template first.")
		return
	}

	contractData := map[string]any{}
	for _, field := range []string{"value", "currency", "start_date", "end_date"} {
		if v := c.PostForm(field); v != "" {
			contractData[field] = v
		}
	}
	if draft := h.drafts.Get(c.PostForm("draft_id")); draft != nil {
		contractData["profile_type"] = draft.ProfileType
	}

	contractID, err := h.client.CreateFromTemplate(c.Request.Context(), templateID, contractData)
	if err != nil {
		logger.WithContext(c.Request.Context()).Warn("template creation failed",
			"template_id", templateID,
			"error", err,
		)
		renderNotice(c, "error", "Could not create the contract: "+upstreamMessage(err))
		return
	}

	h.drafts.Delete(c.PostForm("draft_id"))
	c.Header("HX-Redirect", editorURL(contractID))
	c.HTML(http.StatusOK, "save_outcome.tmpl", view.SaveOutcome{
		Status:     view.SaveStatusSaved,
		ContractID: contractID,
		Message:    "Contract created from template.",
		EditorURL:  editorURL(contractID),
	})
}

// Upload proxies a contract file to the upstream analysis endpoint.
func (h *CreationHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		renderNotice(c, "error", "No file provided.")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" && ext != ".docx" {
		renderNotice(c, "error", "Only PDF and DOCX files are allowed.")
		return
	}

	contractData := map[string]any{}
	if title := c.PostForm("title"); title != "" {
		contractData["title"] = title
	}
	if draft := h.drafts.Get(c.PostForm("draft_id")); draft != nil {
		contractData["profile_type"] = draft.ProfileType
	}

	result, err := h.client.UploadContract(c.Request.Context(), header.Filename, file, contractData)
	if err != nil {
		logger.WithContext(c.Request.Context()).Warn("contract upload failed",
			"filename", header.Filename,
			"error", err,
		)
		renderNotice(c, "error", "Upload failed: "+upstreamMessage(err))
		return
	}

	h.drafts.Delete(c.PostForm("draft_id"))
	c.HTML(http.StatusOK, "upload_outcome.tmpl", view.UploadOutcome{
		ContractID: result.ID,
		Analysis:   result.AIAnalysis,
		EditorURL:  editorURL(result.ID),
	})
}

// Generate requests an AI draft and stores the body on the server-side draft.
// A missing title is rejected before any network activity.
func (h *CreationHandler) Generate(c *gin.Context) {
	draftID := c.PostForm("draft_id")
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		renderNotice(c, "error", "A contract title is required before generating.")
		return
	}
	if h.drafts.Get(draftID) == nil {
		renderNotice(c, "error", "This creation session has expired. Reload the page to start over.")
		return
	}

	selected := make([]model.SelectedClause, 0, 4)
	keys := make([]string, 0, 4)
	descriptions := make(map[string]string)
	for _, key := range c.PostFormArray("clause") {
		label, ok := clauseLabels[key]
		if !ok {
			continue
		}
		selected = append(selected, model.SelectedClause{Key: key, Label: label})
		keys = append(keys, key)
		descriptions[key] = label
	}

	req := service.GenerateRequest{
		Title:              title,
		ContractType:       c.PostForm("contract_type"),
		StartDate:          c.PostForm("start_date"),
		EndDate:            c.PostForm("end_date"),
		Value:              c.PostForm("value"),
		Currency:           c.PostForm("currency"),
		PartyName:          c.PostForm("party_name"),
		PartyEmail:         c.PostForm("party_email"),
		CounterpartyName:   c.PostForm("counterparty_name"),
		CounterpartyEmail:  c.PostForm("counterparty_email"),
		SelectedClauses:    keys,
		ClauseDescriptions: descriptions,
	}

	body, err := h.client.GenerateContract(c.Request.Context(), req)
	if err != nil {
		logger.WithContext(c.Request.Context()).Warn("generation failed",
			"draft_id", draftID,
			"error", err,
		)
		if errors.Is(err, service.ErrEmptyGeneration) {
			renderNotice(c, "error", "Generation returned no contract content. Adjust the details and try again.")
			return
		}
		renderNotice(c, "error", "Generation failed: "+upstreamMessage(err))
		return
	}

	if !h.drafts.SetBody(draftID, title, body, selected) {
		renderNotice(c, "error", "This creation session has expired. Reload the page to start over.")
		return
	}

	c.HTML(http.StatusOK, "generation_preview.tmpl", view.GenerationPreview{
		DraftID:        draftID,
		Title:          title,
		Body:           body,
		OpenSaveDialog: true,
	})
}

// Save persists an AI-generated draft as a real contract in two steps: create
// the record, then attach the body as its first revision. A name and a
// non-empty generated body are required before any network activity. When the
// attach step fails the record is left in place and the outcome is reported as
// partial.
func (h *CreationHandler) Save(c *gin.Context) {
	draftID := c.PostForm("draft_id")
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		renderNotice(c, "error", "A contract name is required.")
		return
	}

	draft := h.drafts.Get(draftID)
	if draft == nil {
		renderNotice(c, "error", "This creation session has expired. Reload the page to start over.")
		return
	}
	if !draft.HasBody() {
		renderNotice(c, "error", "Generate the contract before saving.")
		return
	}

	fields := map[string]any{
		"title":           name,
		"status":          "draft",
		"creation_method": draft.Method,
		"profile_type":    draft.ProfileType,
	}
	// The create-new sentinel is a UI affordance, never a project id.
	if projectID := c.PostForm("project_id"); projectID != "" && projectID != model.ProjectCreateNew {
		fields["project_id"] = projectID
	}

	contractID, err := h.client.CreateContract(c.Request.Context(), fields)
	if err != nil {
		logger.WithContext(c.Request.Context()).Warn("contract creation failed",
			"draft_id", draftID,
			"error", err,
		)
		renderNotice(c, "error", "Could not save the contract: "+upstreamMessage(err))
		return
	}

	if _, err := h.client.AttachContent(c.Request.Context(), contractID, draft.GeneratedBody, "ai_generated", "Initial AI-generated draft"); err != nil {
		logger.WithContext(c.Request.Context()).Warn("content attach failed after record creation",
			"draft_id", draftID,
			"contract_id", contractID,
			"error", err,
		)
		c.HTML(http.StatusOK, "save_outcome.tmpl", view.SaveOutcome{
			Status:     view.SaveStatusPartial,
			ContractID: contractID,
			Message:    "The contract record was created, but its content could not be attached. Open the editor to add it.",
			EditorURL:  editorURL(contractID),
		})
		return
	}

	h.drafts.Delete(draftID)
	logger.WithContext(c.Request.Context()).Info("contract saved",
		"draft_id", draftID,
		"contract_id", contractID,
	)
	c.HTML(http.StatusOK, "save_outcome.tmpl", view.SaveOutcome{
		Status:     view.SaveStatusSaved,
		ContractID: contractID,
		Message:    "Contract saved.",
		EditorURL:  editorURL(contractID),
	})
}

// ProjectOptions renders the project association select. Selecting the
// create-new sentinel reopens the creation modal and resets the selection.
func (h *CreationHandler) ProjectOptions(c *gin.Context) {
	draftID := c.Query("draft_id")
	selected := c.Query("project_id")

	openModal := selected == model.ProjectCreateNew
	if openModal {
		selected = ""
	}

	projects, err := h.client.ListProjects(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context()).Warn("project list fetch failed", "error", err)
		renderNotice(c, "error", "Could not load projects. Please retry.")
		return
	}

	c.HTML(http.StatusOK, "project_options.tmpl", view.ProjectOptions{
		DraftID:         draftID,
		Projects:        projects,
		SelectedID:      selected,
		OpenCreateModal: openModal,
	})
}

// CreateProject creates a project inline and re-renders the select with the
// new project preselected.
func (h *CreationHandler) CreateProject(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		renderNotice(c, "error", "A project title is required.")
		return
	}

	project := model.Project{
		Title:       title,
		Code:        c.PostForm("code"),
		Description: c.PostForm("description"),
		Status:      "active",
	}
	projectID, err := h.client.CreateProject(c.Request.Context(), project)
	if err != nil {
		logger.WithContext(c.Request.Context()).Warn("project creation failed", "error", err)
		renderNotice(c, "error", "Could not create the project: "+upstreamMessage(err))
		return
	}

	projects, err := h.client.ListProjects(c.Request.Context())
	if err != nil {
		// The project exists; render a select carrying just the new entry.
		project.ID = projectID
		projects = []model.Project{project}
	}

	c.HTML(http.StatusOK, "project_options.tmpl", view.ProjectOptions{
		DraftID:    c.PostForm("draft_id"),
		Projects:   projects,
		SelectedID: projectID,
	})
}

func editorURL(contractID string) string {
	return "/contracts/" + contractID + "/edit"
}

// renderNotice terminates a fragment request with a user-facing notice. Every
// fragment endpoint ends in rendered HTML, so a pending loading indicator is
// always replaced.
func renderNotice(c *gin.Context, kind, message string) {
	c.HTML(http.StatusOK, "notice.tmpl", view.Notice{
		Kind:        kind,
		Message:     message,
		Dismissible: true,
	})
}

// upstreamMessage extracts a displayable reason from a service error.
func upstreamMessage(err error) string {
	var apiErr *service.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var softErr *service.SoftError
	if errors.As(err, &softErr) {
		return softErr.Message
	}
	return "the service is unreachable"
}
