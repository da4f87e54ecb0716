package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownBlobBackend error if config blob.backend is neither db nor s3.
	ErrUnknownBlobBackend = errors.New("toml config blob.backend is unknown")

	// ErrEmptyS3Bucket error if the s3 blob backend is selected without a bucket.
	ErrEmptyS3Bucket = errors.New("toml config blob.s3.bucket can not be empty")
)
