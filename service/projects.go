package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Ilhamsafeek/panvel-final-sub001/model"
)

// ListProjects fetches the projects available for association. The upstream
// answers either a bare array or {"projects": [...]}; both are accepted.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects/list", nil, &raw); err != nil {
		return nil, err
	}

	var projects []model.Project
	if err := json.Unmarshal(raw, &projects); err == nil {
		return projects, nil
	}

	var wrapped struct {
		Projects []model.Project `json:"projects"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse project list: %w", err)
	}
	return wrapped.Projects, nil
}

type createProjectRequest struct {
	Title       string `json:"title"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// CreateProject creates a project inline from the secondary modal and
// returns its id.
func (c *Client) CreateProject(ctx context.Context, p model.Project) (string, error) {
	req := createProjectRequest{
		Title:       p.Title,
		Code:        p.Code,
		Description: p.Description,
		Status:      p.Status,
	}

	var resp map[string]any
	if err := c.doJSON(ctx, http.MethodPost, "/api/projects/", req, &resp); err != nil {
		return "", err
	}

	id := stringID(resp["id"])
	if id == "" {
		return "", fmt.Errorf("project creation response carried no id")
	}
	return id, nil
}
