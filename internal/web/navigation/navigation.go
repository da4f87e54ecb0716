// Package navigation builds the page title, breadcrumbs and sort links of rendered pages.
package navigation

import (
	"net/url"
)

const (
	orderAsc  = "asc"
	orderDesc = "desc"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// SortOption is a link re-sorting a listing by one field.
type SortOption struct {
	Field  string
	Label  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActivePage  string
	Breadcrumbs []BreadcrumbItem
	PageTitle   string
	BasePath    string
	SortBy      string
	Order       string
	SortOptions []SortOption
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activePage, basePath string) *Context {
	return &Context{
		PageTitle:   pageTitle,
		ActivePage:  activePage,
		BasePath:    basePath,
		Breadcrumbs: make([]BreadcrumbItem, 0),
		SortOptions: make([]SortOption, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// WithSort sets the current ordering, sort links added afterwards keep it.
func (c *Context) WithSort(sortBy, order string) *Context {
	c.SortBy = sortBy
	c.Order = order

	return c
}

// AddSortOption adds a link sorting by field in the current order.
func (c *Context) AddSortOption(field, label string) *Context {
	c.SortOptions = append(c.SortOptions, SortOption{
		Field:  field,
		Label:  label,
		URL:    c.sortURL(field, c.Order),
		Active: field == c.SortBy,
	})

	return c
}

// ToggleOrderURL links the current sort field in the opposite order.
func (c *Context) ToggleOrderURL() string {
	order := orderAsc
	if c.Order == orderAsc {
		order = orderDesc
	}

	return c.sortURL(c.SortBy, order)
}

// IsActive checks if the given page is the current one.
func (c *Context) IsActive(page string) bool {
	return c.ActivePage == page
}

func (c *Context) sortURL(field, order string) string {
	q := url.Values{}
	q.Set("sortBy", field)
	q.Set("order", order)

	return c.BasePath + "?" + q.Encode()
}
