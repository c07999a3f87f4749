package config

import (
	"crypto/rand"
	"encoding/base64"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// secretPlaceholder is the value shipped in example configuration. A secret
// equal to this (or left blank) is replaced with a freshly generated one.
const secretPlaceholder = "put a random password here"

// Load reads, validates, and returns the configuration at the given path. If
// the webhook secret is blank or still set to the placeholder, a new URL-safe
// secret is generated and persisted back to the file before returning.
func Load(path string) (*Config, error) {
	configBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file %s", path)
	}
	config := &Config{}
	if err = yaml.Unmarshal(configBytes, config); err != nil {
		return nil, errors.Wrapf(err, "error parsing config file %s", path)
	}
	if config.WebhookSecret == "" ||
		config.WebhookSecret == secretPlaceholder {
		if config.WebhookSecret, err = generateSecret(); err != nil {
			return nil, err
		}
		if err = persist(path, config); err != nil {
			return nil, err
		}
	}
	if err = config.validate(); err != nil {
		return nil, errors.Wrapf(err, "error validating config file %s", path)
	}
	return config, nil
}

// generateSecret returns a URL-safe secret derived from 32 bytes of
// cryptographically random data.
func generateSecret() (string, error) {
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", errors.Wrap(err, "error generating webhook secret")
	}
	return base64.RawURLEncoding.EncodeToString(secretBytes), nil
}

func persist(path string, config *Config) error {
	configBytes, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "error marshaling config")
	}
	if err = os.WriteFile(path, configBytes, 0600); err != nil {
		return errors.Wrapf(err, "error writing config file %s", path)
	}
	return nil
}
