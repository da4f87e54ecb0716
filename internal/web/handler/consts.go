package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// APIPath prefixes every JSON endpoint.
	APIPath = "/api"

	// ErrNilACDFatalLogMsg is used if app, cfg or a required dependency is nil.
	ErrNilACDFatalLogMsg = "app, cfg or a dependency is nil"
)
