package model

// Project is an existing project a saved contract can be associated with.
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ProjectCreateNew is the select-option sentinel for "create a new project".
// It must never be transmitted upstream as a project id: it reopens the
// creation modal and resets the selection control instead.
const ProjectCreateNew = "__create_new__"
