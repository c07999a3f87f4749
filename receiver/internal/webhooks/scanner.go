package webhooks

import (
	"regexp"
)

// buildURLRegex matches ToDesktop download URLs embedded in CI job traces.
var buildURLRegex = regexp.MustCompile(
	`https://dl\.todesktop\.com/[a-z0-9]+/builds/[a-z0-9]+`,
)

// findBuildURL returns the first ToDesktop build URL embedded in the given
// job trace, verbatim, or the empty string if the trace contains none.
func findBuildURL(trace string) string {
	return buildURLRegex.FindString(trace)
}
