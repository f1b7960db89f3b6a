package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Ilhamsafeek/panvel-final-sub001/model"
)

// CreationOptions fetches the template catalog and capabilities for a profile.
func (c *Client) CreationOptions(ctx context.Context, profileType string) (*model.CreationOptions, error) {
	path := "/api/contracts/creation-options"
	if profileType != "" {
		path += "?profile_type=" + url.QueryEscape(profileType)
	}

	var opts model.CreationOptions
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

type createFromTemplateRequest struct {
	TemplateID   string         `json:"template_id"`
	ContractData map[string]any `json:"contract_data"`
}

// CreateFromTemplate creates a contract directly from a template with
// optional field overrides and returns the new contract id.
func (c *Client) CreateFromTemplate(ctx context.Context, templateID string, contractData map[string]any) (string, error) {
	req := createFromTemplateRequest{TemplateID: templateID, ContractData: contractData}

	var resp map[string]any
	if err := c.doJSON(ctx, http.MethodPost, "/api/contracts/create-from-template", req, &resp); err != nil {
		return "", err
	}

	id := stringID(resp["id"])
	if id == "" {
		return "", fmt.Errorf("create-from-template response carried no contract id")
	}
	return id, nil
}

// UploadResult is the analysis outcome of an uploaded contract file.
type UploadResult struct {
	ID         string         `json:"id"`
	AIAnalysis map[string]any `json:"ai_analysis"`
}

// UploadContract proxies a contract file plus metadata to the upstream
// analysis endpoint as multipart/form-data.
func (c *Client) UploadContract(ctx context.Context, filename string, file io.Reader, contractData map[string]any) (*UploadResult, error) {
	meta, err := json.Marshal(contractData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contract data: %w", err)
	}

	var raw map[string]any
	fields := map[string]string{"contract_data": string(meta)}
	if err := c.doMultipart(ctx, "/api/contracts/upload-contract", "file", filename, file, fields, &raw); err != nil {
		return nil, err
	}

	result := &UploadResult{ID: stringID(raw["id"])}
	if analysis, ok := raw["ai_analysis"].(map[string]any); ok {
		result.AIAnalysis = analysis
	}
	return result, nil
}

// GenerateRequest carries the AI-generation form fields.
type GenerateRequest struct {
	Title              string            `json:"title"`
	ContractType       string            `json:"contract_type,omitempty"`
	StartDate          string            `json:"start_date,omitempty"`
	EndDate            string            `json:"end_date,omitempty"`
	Value              string            `json:"value,omitempty"`
	Currency           string            `json:"currency,omitempty"`
	PartyName          string            `json:"party_name,omitempty"`
	PartyEmail         string            `json:"party_email,omitempty"`
	CounterpartyName   string            `json:"counterparty_name,omitempty"`
	CounterpartyEmail  string            `json:"counterparty_email,omitempty"`
	SelectedClauses    []string          `json:"selected_clauses"`
	ClauseDescriptions map[string]string `json:"clause_descriptions"`
}

// GenerateContract requests an AI-generated draft and extracts its body.
// contract_content is the canonical response field; contract_body,
// ai_result.contract_text and content are read as deprecated aliases. A
// response carrying none of them is ErrEmptyGeneration: a draft must never be
// saved with an empty body.
func (c *Client) GenerateContract(ctx context.Context, req GenerateRequest) (string, error) {
	var raw map[string]any
	if err := c.doJSON(ctx, http.MethodPost, "/api/contracts/ai-generate", req, &raw); err != nil {
		return "", err
	}

	body := extractGeneratedContent(raw)
	if body == "" {
		return "", ErrEmptyGeneration
	}
	return body, nil
}

func extractGeneratedContent(raw map[string]any) string {
	if s, ok := raw["contract_content"].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	if s, ok := raw["contract_body"].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	if aiResult, ok := raw["ai_result"].(map[string]any); ok {
		if s, ok := aiResult["contract_text"].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	if s, ok := raw["content"].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return ""
}

// CreateContract creates the contract record (first step of the save flow)
// and returns its id.
func (c *Client) CreateContract(ctx context.Context, fields map[string]any) (string, error) {
	var resp map[string]any
	if err := c.doJSON(ctx, http.MethodPost, "/api/contracts/", fields, &resp); err != nil {
		return "", err
	}

	id := stringID(resp["id"])
	if id == "" {
		return "", fmt.Errorf("contract creation response carried no id")
	}
	return id, nil
}

type attachContentRequest struct {
	Content       string `json:"content"`
	VersionType   string `json:"version_type"`
	ChangeSummary string `json:"change_summary"`
}

// AttachResult describes the content revision created by AttachContent.
type AttachResult struct {
	VersionNumber int `json:"version_number"`
	ContentLength int `json:"content_length"`
}

// AttachContent attaches body content as a revision to an existing contract
// (second step of the save flow). When this fails after CreateContract
// succeeded, the record still exists upstream: the caller reports partial
// success and must not roll the record back.
func (c *Client) AttachContent(ctx context.Context, contractID, content, versionType, changeSummary string) (*AttachResult, error) {
	path := "/api/contracts/" + url.PathEscape(contractID) + "/content"
	req := attachContentRequest{Content: content, VersionType: versionType, ChangeSummary: changeSummary}

	var result AttachResult
	if err := c.doJSON(ctx, http.MethodPost, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
