package main

import (
	"time"

	"github.com/beeper/gitlab-build-gateway/internal/config"
	"github.com/brigadecore/brigade-foundations/file"
	"github.com/brigadecore/brigade-foundations/os"
	"github.com/pkg/errors"
)

// gitlabClientConfig retrieves the GitLab base URL and private token from the
// gateway's domain configuration file, whose path is specified by an
// environment variable.
func gitlabClientConfig() (string, string, error) {
	path, err := os.GetRequiredEnvVar("CONFIG_PATH")
	if err != nil {
		return "", "", err
	}
	exists, err := file.Exists(path)
	if err != nil {
		return "", "", err
	}
	if !exists {
		return "", "", errors.Errorf("file %s does not exist", path)
	}
	gatewayConfig, err := config.Load(path)
	if err != nil {
		return "", "", err
	}
	return gatewayConfig.GitlabURL, gatewayConfig.GitlabToken, nil
}

// matrixSenderConfig populates Matrix connectivity configuration from
// environment variables.
func matrixSenderConfig() (string, string, string, error) {
	homeserverURL, err := os.GetRequiredEnvVar("HOMESERVER_URL")
	if err != nil {
		return "", "", "", err
	}
	userID := os.GetEnvVar("MATRIX_USER_ID", "")
	accessToken, err := os.GetRequiredEnvVar("MATRIX_ACCESS_TOKEN")
	return homeserverURL, userID, accessToken, err
}

// getMonitorConfig populates configuration for the monitor from environment
// variables.
func getMonitorConfig() (monitorConfig, error) {
	config := monitorConfig{}
	var err error
	config.healthcheckInterval, err = os.GetDurationFromEnvVar(
		"HEALTHCHECK_INTERVAL",
		30*time.Second,
	)
	return config, err
}
