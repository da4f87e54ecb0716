// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of environment variables overriding single config keys.
	EnvPrefix = "DREAMBOARD"

	// EnvConfigJSON holds a whole JSON document merged over the TOML file.
	EnvConfigJSON = "DREAMBOARD_CONFIG_JSON"

	mainConfigFile = "main.toml"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c   Config
		v   = viper.New()
		err error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v.SetConfigFile(path + mainConfigFile)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	if configJSON := os.Getenv(EnvConfigJSON); configJSON != "" {
		v.SetConfigType("json")

		if err = v.MergeConfig(strings.NewReader(configJSON)); err != nil {
			return Config{}, errors.Wrap(err, "failed to merge json config from env")
		}
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	return c, validate(&c)
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	if err := toml.NewEncoder(&buffer).Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings and fill in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.Upload.MaxSize == 0 {
		c.Upload.MaxSize = DefaultUploadMaxSize
	}

	if c.Listing.DefaultLimit == 0 {
		c.Listing.DefaultLimit = DefaultListLimit
	}

	if c.Listing.MaxLimit == 0 {
		c.Listing.MaxLimit = DefaultListMaxLimit
	}

	switch c.Blob.Backend {
	case "":
		c.Blob.Backend = BlobBackendDB
	case BlobBackendDB:
	case BlobBackendS3:
		if c.Blob.S3.Bucket == "" {
			return errors.Wrap(ErrEmptyS3Bucket, invalidErrMessage)
		}
	default:
		return errors.Wrapf(ErrUnknownBlobBackend, "%s: %q", invalidErrMessage, c.Blob.Backend)
	}

	if c.DB.GormEngine == "" {
		c.DB.GormEngine = GormEngineSQLite
	}

	return nil
}
