// Package upload accepts image uploads and hands them to the blob store.
package upload

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/dreamboard/dreamboard/internal/blob"
	"github.com/dreamboard/dreamboard/internal/config"
	"github.com/dreamboard/dreamboard/internal/web/handler"
)

const (
	// Path is the upload endpoint.
	Path = handler.APIPath + "/upload"

	// FormField is the multipart field carrying the image.
	FormField = "image"
)

// Response reports where the uploaded image is served.
type Response struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// Service is the upload handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	store blob.Store
}

// Handler is the upload handler.
var Handler = Service{}

// Init initializes the upload handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) error {
	if app == nil || cfg == nil || deps.Store == nil {
		return handler.ErrNilDependency
	}

	s.cfg = cfg
	s.store = deps.Store

	app.Post(Path, s.Post)

	return nil
}

// Post validates and stores one image.
func (s *Service) Post(c *fiber.Ctx) error {
	file, err := c.FormFile(FormField)
	if err != nil {
		return blob.ErrEmpty
	}

	contentType := file.Header.Get(fiber.HeaderContentType)
	if err = blob.Validate(contentType, file.Size, s.cfg.Upload.MaxSize); err != nil {
		return err
	}

	f, err := file.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return errors.Wrap(err, "failed to read upload")
	}

	filename, err := s.store.Put(c.UserContext(), blob.Object{
		Filename:    blob.NewFilename(contentType),
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		return err
	}

	log.Info().Str("filename", filename).Int64("size", file.Size).Str("contentType", contentType).Msg("image uploaded")

	return c.JSON(Response{Success: true, URL: blob.URL(filename)})
}
