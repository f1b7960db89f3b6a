package model

// Template is a predefined contract skeleton selectable by profile/category.
// Read-only on the client; selection is exclusive.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Type        string `json:"type"`
}

// TemplateCategory groups the catalog returned by the creation-options call.
type TemplateCategory struct {
	Name      string     `json:"name"`
	Templates []Template `json:"templates"`
}

// CreationOptions is the catalog fetched for a profile type.
type CreationOptions struct {
	TemplateCategories []TemplateCategory `json:"template_categories"`
	CreationMethods    []string           `json:"creation_methods,omitempty"`
	AICapabilities     map[string]any     `json:"ai_capabilities,omitempty"`
}
