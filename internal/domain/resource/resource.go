package resource

// Item is one learning resource from the platform.
type Item struct {
	ID            string `json:"id"`
	Topic         string `json:"topic"`
	Subject       string `json:"subject"`
	LearningStyle string `json:"learning_style"`
	Duration      string `json:"duration"`
	Description   string `json:"description"`
	Content       string `json:"content"`
}

// Path is a learner's position within their ordered sequence of resources.
// The platform ships the sequence as resource ids and embeds the resource at
// the current position whole; Current is nil once the path is complete.
type Path struct {
	LearnerID            string   `json:"learner_id"`
	Position             int      `json:"current_position"`
	TotalResources       int      `json:"total_resources"`
	CompletedResources   int      `json:"completed_resources"`
	CompletionPercentage float64  `json:"completion_percentage"`
	Current              *Item    `json:"current_resource"`
	ResourceIDs          []string `json:"all_resources"`
}

// Collection is a named set of resources from one source.
type Collection struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Resources []Item `json:"resources"`
}
