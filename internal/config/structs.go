package config

import (
	"time"

	"github.com/dreamboard/dreamboard/internal/logger"
)

const (
	// DefaultUploadMaxSize is the largest accepted image upload (5 MiB).
	DefaultUploadMaxSize int64 = 5 << 20

	// DefaultListLimit is the number of dreams returned when no limit is requested.
	DefaultListLimit = 9

	// DefaultListMaxLimit caps the limit a client may request.
	DefaultListMaxLimit = 100

	// BlobBackendDB stores image bytes in the images table.
	BlobBackendDB = "db"

	// BlobBackendS3 stores image bytes in an S3 compatible bucket.
	BlobBackendS3 = "s3"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Upload    Upload
	Listing   Listing
	Blob      Blob
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool    // enable static file browsing (for development purposes only)
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}

// Upload holds image upload limits.
type Upload struct {
	MaxSize int64 // maximum upload size in bytes
}

// Listing holds the dream listing defaults.
type Listing struct {
	DefaultLimit int
	MaxLimit     int
}

// Blob selects and configures the image storage backend.
type Blob struct {
	Backend string // "db" or "s3"
	S3      S3
}

// S3 holds the settings of an S3 compatible bucket (AWS, MinIO, R2, ...).
type S3 struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string // optional custom endpoint, enables path style addressing
	Timeout   time.Duration
}
