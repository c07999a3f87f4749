package config

import (
	"github.com/pkg/errors"
)

// ProjectType identifies the artifact resolution strategy for a project.
type ProjectType string

const (
	// ProjectTypeTodesktop identifies projects whose artifact is a ToDesktop
	// build, discovered by scanning the CI job trace for a download URL.
	ProjectTypeTodesktop ProjectType = "todesktop"
	// ProjectTypeAndroid identifies projects whose artifact is an APK exposed
	// through GitLab's job artifact browser.
	ProjectTypeAndroid ProjectType = "android"
)

// Project encapsulates per-project notification configuration. Projects are
// keyed by the decimal string form of their GitLab project ID.
type Project struct {
	// Type selects the artifact resolution strategy for this project.
	Type ProjectType `yaml:"type"`
	// BuildNameMap maps raw CI build names to display names used in
	// notifications.
	BuildNameMap map[string]string `yaml:"build_name_map"`
	// MessageFormat is the notification template. Placeholders of the form
	// {name} are replaced with template parameters at composition time.
	MessageFormat string `yaml:"message_format"`
	// APKPathMap maps build names to artifact paths within the job's artifact
	// archive. Only used by android-type projects.
	APKPathMap map[string]string `yaml:"apk_path_map,omitempty"`
}

// Config is one immutable snapshot of the gateway's domain configuration.
// Snapshots are replaced wholesale on reload and must never be mutated after
// they have been published by a Store.
type Config struct {
	// WebhookSecret is the shared secret that inbound webhooks must present in
	// the X-Gitlab-Token header.
	WebhookSecret string `yaml:"webhook_secret"`
	// GitlabURL is the base URL of the GitLab instance whose API is consulted
	// for job traces.
	GitlabURL string `yaml:"gitlab_url"`
	// GitlabToken is the private token used to authenticate to the GitLab API.
	GitlabToken string `yaml:"gitlab_token"`
	// Projects maps GitLab project IDs to per-project configuration.
	Projects map[string]Project `yaml:"projects"`
}

func (c *Config) validate() error {
	for id, project := range c.Projects {
		switch project.Type {
		case ProjectTypeTodesktop:
			if c.GitlabURL == "" || c.GitlabToken == "" {
				return errors.Errorf(
					"project %s is of type %q, which requires gitlab_url and "+
						"gitlab_token to be set",
					id,
					project.Type,
				)
			}
		case ProjectTypeAndroid:
			if len(project.APKPathMap) == 0 {
				return errors.Errorf(
					"project %s is of type %q, which requires a non-empty "+
						"apk_path_map",
					id,
					project.Type,
				)
			}
		default:
			return errors.Errorf(
				"project %s has unrecognized type %q",
				id,
				project.Type,
			)
		}
	}
	return nil
}
