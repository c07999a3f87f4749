package main

import (
	"github.com/brigadecore/brigade-foundations/file"
	"github.com/brigadecore/brigade-foundations/http"
	"github.com/brigadecore/brigade-foundations/os"
	"github.com/pkg/errors"
)

// configPath retrieves the path of the gateway's domain configuration file
// from an environment variable and confirms the file exists.
func configPath() (string, error) {
	path, err := os.GetRequiredEnvVar("CONFIG_PATH")
	if err != nil {
		return "", err
	}
	exists, err := file.Exists(path)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", errors.Errorf("file %s does not exist", path)
	}
	return path, nil
}

// matrixSenderConfig populates Matrix delivery configuration from environment
// variables.
func matrixSenderConfig() (string, string, string, error) {
	homeserverURL, err := os.GetRequiredEnvVar("HOMESERVER_URL")
	if err != nil {
		return "", "", "", err
	}
	userID := os.GetEnvVar("MATRIX_USER_ID", "")
	accessToken, err := os.GetRequiredEnvVar("MATRIX_ACCESS_TOKEN")
	return homeserverURL, userID, accessToken, err
}

// serverConfig populates configuration for the HTTP/S server from environment
// variables.
func serverConfig() (http.ServerConfig, error) {
	config := http.ServerConfig{}
	var err error
	config.Port, err = os.GetIntFromEnvVar("RECEIVER_PORT", 8080)
	if err != nil {
		return config, err
	}
	config.TLSEnabled, err = os.GetBoolFromEnvVar("TLS_ENABLED", false)
	if err != nil {
		return config, err
	}
	if config.TLSEnabled {
		config.TLSCertPath, err = os.GetRequiredEnvVar("TLS_CERT_PATH")
		if err != nil {
			return config, err
		}
		config.TLSKeyPath, err = os.GetRequiredEnvVar("TLS_KEY_PATH")
		if err != nil {
			return config, err
		}
	}
	return config, nil
}
