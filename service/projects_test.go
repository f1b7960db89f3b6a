package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ilhamsafeek/panvel-final-sub001/model"
)

func TestListProjectsBareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/list" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "prj-1", "title": "Harbor Expansion"},
		})
	}))
	defer server.Close()

	client := testClient(t, server)

	projects, err := client.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != "prj-1" {
		t.Errorf("Unexpected projects %v", projects)
	}
}

func TestListProjectsWrappedObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"projects": []map[string]any{
				{"id": "prj-2", "title": "Terminal Refit"},
				{"id": "prj-3", "title": "Quay Wall"},
			},
		})
	}))
	defer server.Close()

	client := testClient(t, server)

	projects, err := client.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("Expected 2 projects, got %d", len(projects))
	}
	if projects[1].Title != "Quay Wall" {
		t.Errorf("Unexpected title %s", projects[1].Title)
	}
}

func TestCreateProject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		if req["title"] != "New Project" {
			t.Errorf("Expected title, got %v", req["title"])
		}
		if req["status"] != "active" {
			t.Errorf("Expected status active, got %v", req["status"])
		}
		json.NewEncoder(w).Encode(map[string]any{"id": "prj-9"})
	}))
	defer server.Close()

	client := testClient(t, server)

	id, err := client.CreateProject(context.Background(), model.Project{
		Title:  "New Project",
		Code:   "NP-01",
		Status: "active",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id != "prj-9" {
		t.Errorf("Expected id prj-9, got %s", id)
	}
}
