package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dreamboard/dreamboard/internal/blob"
	"github.com/dreamboard/dreamboard/internal/config"
	"github.com/dreamboard/dreamboard/internal/dream"
)

// Deps are the shared services a handler is initialized with.
type Deps struct {
	DB     *gorm.DB
	Dreams *dream.Service
	Store  blob.Store
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, deps Deps) error
}
