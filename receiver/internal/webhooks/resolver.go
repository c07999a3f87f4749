package webhooks

import (
	"context"
	"fmt"
	"strings"

	"github.com/beeper/gitlab-build-gateway/internal/config"
	"github.com/beeper/gitlab-build-gateway/internal/gitlab"
	"github.com/pkg/errors"
)

// resolution is the outcome of artifact resolution: either extra template
// parameters for message composition or, when skip is non-empty, the reason
// the webhook is an expected no-op. Fatal failures are returned as errors
// instead; expected outcomes never travel through error machinery.
type resolution struct {
	params map[string]string
	skip   string
}

// artifactResolver is the per-project-type strategy that determines
// artifact-specific template parameters.
type artifactResolver interface {
	resolve(
		ctx context.Context,
		project config.Project,
		payload Payload,
	) (resolution, error)
}

// resolverFor selects the resolver for the given project type. The variant
// set is closed; an unrecognized type is an operator misconfiguration.
func (s *service) resolverFor(
	snapshot *config.Config,
	projectType config.ProjectType,
) (artifactResolver, error) {
	switch projectType {
	case config.ProjectTypeTodesktop:
		return &todesktopResolver{
			gitlabClient: s.gitlabClientFactory.NewClient(
				snapshot.GitlabURL,
				snapshot.GitlabToken,
			),
		}, nil
	case config.ProjectTypeAndroid:
		return &androidResolver{}, nil
	default:
		return nil, errors.Errorf(
			"project has unrecognized type %q",
			projectType,
		)
	}
}

// todesktopResolver fetches the CI job's trace and scans it for the ToDesktop
// download URL the build uploader prints.
type todesktopResolver struct {
	gitlabClient gitlab.Client
}

func (t *todesktopResolver) resolve(
	ctx context.Context,
	_ config.Project,
	payload Payload,
) (resolution, error) {
	trace, err := t.gitlabClient.JobTrace(
		ctx,
		payload.ProjectID,
		payload.BuildID,
	)
	if err != nil {
		return resolution{}, &dispatchError{
			detail: "Failed to get todesktop build ID",
			cause:  err,
		}
	}
	buildURL := findBuildURL(trace)
	if buildURL == "" {
		// A trace without a build URL is a normal occurrence, e.g. when the
		// upload step was skipped. Not an error.
		return resolution{skip: "Todesktop URL not found"}, nil
	}
	return resolution{
		params: map[string]string{
			"todesktop_url": buildURL,
		},
	}, nil
}

// androidResolver derives the APK's artifact-browser URL from configuration
// alone. No network call is involved.
type androidResolver struct{}

func (a *androidResolver) resolve(
	_ context.Context,
	project config.Project,
	payload Payload,
) (resolution, error) {
	apkPath, ok := project.APKPathMap[payload.BuildName]
	if !ok {
		// Unlike a missing trace URL, this can only mean the project's
		// apk_path_map is out of sync with CI.
		return resolution{}, errors.Errorf(
			"no apk path mapped for build name %q",
			payload.BuildName,
		)
	}
	return resolution{
		params: map[string]string{
			"apk_url": fmt.Sprintf(
				"%s/-/jobs/%d/artifacts/browse/%s",
				strings.TrimSuffix(payload.Repository.Homepage, "/"),
				payload.BuildID,
				apkPath,
			),
		},
	}, nil
}
