package webhooks

// Payload is the subset of a GitLab job-event webhook that the gateway
// consumes. Payloads are parsed per request, consumed once, and discarded.
type Payload struct {
	ProjectID   int64      `json:"project_id"`
	BuildID     int64      `json:"build_id"`
	BuildStatus string     `json:"build_status"`
	BuildName   string     `json:"build_name"`
	SHA         string     `json:"sha"`
	Repository  Repository `json:"repository"`
}

// Repository carries repository details from a GitLab job-event webhook.
type Repository struct {
	// Homepage is the repository's base URL, from which commit and artifact
	// URLs are derived.
	Homepage string `json:"homepage"`
}
