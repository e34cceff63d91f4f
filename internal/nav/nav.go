// Package nav defines the navigation contract between pages and the router.
package nav

// Routes known to the application.
const (
	RouteList   = "/"
	RouteCreate = "/pets/create"
)

// Options controls a navigation.
type Options struct {
	// Replace swaps the current history entry instead of pushing a new one.
	Replace bool
}

// Navigator moves the application to another route.
type Navigator interface {
	NavigateTo(path string, opts Options)
}
