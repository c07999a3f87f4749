package webhooks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beeper/gitlab-build-gateway/internal/config"
	"github.com/pkg/errors"
)

var placeholderRegex = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// composeMessage builds the base template parameters from the payload, merges
// in resolver-supplied extras, and substitutes them into the project's
// message format. A placeholder in the format with no corresponding parameter
// is a configuration error.
func composeMessage(
	project config.Project,
	payload Payload,
	extra map[string]string,
) (string, error) {
	buildName, ok := project.BuildNameMap[payload.BuildName]
	if !ok {
		return "", errors.Errorf(
			"build name %q is not mapped to a display name",
			payload.BuildName,
		)
	}
	commitHash := payload.SHA
	if len(commitHash) > 8 {
		commitHash = commitHash[:8]
	}
	params := map[string]string{
		"build_name":  buildName,
		"commit_hash": commitHash,
		"commit_url": fmt.Sprintf(
			"%s/-/commit/%s",
			strings.TrimSuffix(payload.Repository.Homepage, "/"),
			payload.SHA,
		),
	}
	for name, value := range extra {
		params[name] = value
	}
	var missing []string
	message := placeholderRegex.ReplaceAllStringFunc(
		project.MessageFormat,
		func(match string) string {
			value, ok := params[match[1:len(match)-1]]
			if !ok {
				missing = append(missing, match)
				return match
			}
			return value
		},
	)
	if len(missing) > 0 {
		return "", errors.Errorf(
			"message format references parameters that were not supplied: %s",
			strings.Join(missing, ", "),
		)
	}
	return message, nil
}
