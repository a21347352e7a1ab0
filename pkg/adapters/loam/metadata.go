package loam

// EntryMetadata is the frontmatter of a catalog content file.
// It uses "mapstructure" tags so Loam can decode standard YAML keys.
type EntryMetadata struct {
	// Kind selects the table: step, source, workflow, resource, suggestion or note.
	Kind string `json:"kind" mapstructure:"kind"`

	ID          string `json:"id" mapstructure:"id"`
	Title       string `json:"title" mapstructure:"title"`
	Name        string `json:"name" mapstructure:"name"`
	Command     string `json:"command" mapstructure:"command"`
	URL         string `json:"url" mapstructure:"url"`
	Type        string `json:"type" mapstructure:"type"`
	Description string `json:"description" mapstructure:"description"`
}

const (
	KindStep       = "step"
	KindSource     = "source"
	KindWorkflow   = "workflow"
	KindResource   = "resource"
	KindSuggestion = "suggestion"
	KindNote       = "note"
)
