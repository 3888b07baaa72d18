package shell

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"

	"github.com/jonathan/jobboard/internal/types"
)

// ErrNoRoute is returned for a path no page serves.
var ErrNoRoute = errors.New("no such page")

// Users supplies the logged-in user.
type Users interface {
	User() (*types.User, bool)
}

// Location is a resolved page with its navigation context.
type Location struct {
	Path   string
	Page   Page
	Params map[string]string
	Query  url.Values
	// From is the path that was refused when the user was sent to the login page.
	From string
}

// Param returns a captured path value such as the job id.
func (l Location) Param(name string) string {
	return l.Params[name]
}

// Highlight is the application the page was asked to highlight, if any.
func (l Location) Highlight() types.ID {
	if l.Query == nil {
		return ""
	}
	return types.ID(l.Query.Get("highlight"))
}

// Router tracks the current page. It satisfies api.Navigator.
type Router struct {
	users Users

	mu      sync.Mutex
	current Location
	history []string
}

// NewRouter creates a router that gates pages by the user from users.
func NewRouter(users Users) *Router {
	return &Router{users: users}
}

// Resolve matches path to a page and checks that user may see it.
// A user who may not is sent to the login page.
func Resolve(path string, user *types.User) (Location, error) {
	u, err := url.Parse(path)
	if err != nil {
		return Location{}, fmt.Errorf("invalid path %q: %w", path, err)
	}

	for _, route := range Routes {
		params, ok := route.match(u.Path)
		if !ok {
			continue
		}
		if !route.allows(user) {
			return Location{Path: LoginPath, Page: PageLogin, Query: url.Values{}, From: u.Path}, nil
		}
		return Location{Path: u.Path, Page: route.Page, Params: params, Query: u.Query()}, nil
	}
	return Location{}, fmt.Errorf("%w: %s", ErrNoRoute, u.Path)
}

// Navigate moves to path, gated by the current user.
func (r *Router) Navigate(path string) {
	if _, err := r.Go(path); err != nil {
		log.Printf("[shell] navigate to %s: %v", path, err)
	}
}

// Go moves to path and returns where the user ended up.
func (r *Router) Go(path string) (Location, error) {
	var user *types.User
	if r.users != nil {
		if u, ok := r.users.User(); ok {
			user = u
		}
	}

	loc, err := Resolve(path, user)
	if err != nil {
		return Location{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = loc
	r.history = append(r.history, loc.Path)
	return loc, nil
}

// Current returns the page the user is on.
func (r *Router) Current() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// History returns the visited paths, oldest first.
func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}
