package board

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jonathan/jobboard/internal/api"
	"github.com/jonathan/jobboard/internal/status"
	"github.com/jonathan/jobboard/internal/types"
)

const (
	// UnknownJobTitle groups applications whose job has no title.
	UnknownJobTitle = "Unknown Job"
	// PreviewLength is how much of a cover letter the list view shows.
	PreviewLength = 150
	// HighlightDuration is how long a navigated-to application stays highlighted.
	HighlightDuration = 3 * time.Second
)

// ErrEmptyCV is returned when a downloaded CV has no content.
var ErrEmptyCV = errors.New("CV file is empty")

// ApplicationService is the backend used by the employer review board.
type ApplicationService interface {
	ApplicationsByEmployer(ctx context.Context, employerID types.ID) ([]types.Application, error)
	UpdateApplicationStatus(ctx context.Context, id types.ID, status, message string) error
	DownloadCV(ctx context.Context, filename string) ([]byte, error)
}

// Saver stores a downloaded file and returns where it went.
type Saver interface {
	Save(name string, data []byte) (string, error)
}

// FileSaver saves files into a directory.
type FileSaver struct {
	Dir string
}

// Save writes data to Dir/name.
func (s FileSaver) Save(name string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", name, err)
	}
	return path, nil
}

// DownloadError is a failed CV download with the message to show.
type DownloadError struct {
	Message string
	Cause   error
}

func (e *DownloadError) Error() string {
	return e.Message
}

func (e *DownloadError) Unwrap() error {
	return e.Cause
}

// Group is the applications for one job title.
type Group struct {
	Title        string
	Applications []types.Application
}

// ApplicationBoard is the employer's review board across all their jobs.
type ApplicationBoard struct {
	svc  ApplicationService
	list *List[types.Application, status.ApplicationStatus]
	opts *options

	mu             sync.Mutex
	detail         types.ID
	highlight      types.ID
	highlightUntil time.Time
}

var applicationAdapter = Adapter[types.Application, status.ApplicationStatus]{
	ID:     func(a types.Application) types.ID { return a.ID },
	Status: func(a types.Application) status.ApplicationStatus { return status.ApplicationStatus(a.Status) },
	WithStatus: func(a types.Application, to status.ApplicationStatus, note string) types.Application {
		a.Status = string(to)
		if note != "" {
			a.ResponseMessage = note
		}
		return a
	},
}

// NewApplicationBoard creates an empty board.
func NewApplicationBoard(svc ApplicationService, opts ...Option) *ApplicationBoard {
	o := newOptions(opts)
	commit := func(ctx context.Context, id types.ID, to status.ApplicationStatus, note string) error {
		return svc.UpdateApplicationStatus(ctx, id, string(to), note)
	}
	return &ApplicationBoard{
		svc:  svc,
		list: NewList("applications", status.Machine[status.ApplicationStatus](status.ApplicationMachine{}), applicationAdapter, commit, o.logger),
		opts: o,
	}
}

// Load fetches every application for the employer.
func (b *ApplicationBoard) Load(ctx context.Context, employerID types.ID) error {
	return b.list.Load(ctx, func(ctx context.Context) ([]types.Application, error) {
		return b.svc.ApplicationsByEmployer(ctx, employerID)
	})
}

// Applications returns all applications on the board.
func (b *ApplicationBoard) Applications() []types.Application {
	return b.list.Items()
}

// Get returns one application.
func (b *ApplicationBoard) Get(id types.ID) (types.Application, bool) {
	return b.list.Get(id)
}

// Actions lists the transitions offered for an application.
func (b *ApplicationBoard) Actions(id types.ID) []status.Action {
	return b.list.Actions(id)
}

// Groups buckets applications by job title, in order of first appearance.
func (b *ApplicationBoard) Groups() []Group {
	return GroupByJobTitle(b.list.Items())
}

// GroupByJobTitle buckets applications by job title, in order of first appearance.
// Applications without a title go to UnknownJobTitle.
func GroupByJobTitle(apps []types.Application) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, app := range apps {
		title := strings.TrimSpace(app.JobTitle)
		if title == "" {
			title = UnknownJobTitle
		}
		i, ok := index[title]
		if !ok {
			i = len(groups)
			index[title] = i
			groups = append(groups, Group{Title: title})
		}
		groups[i].Applications = append(groups[i].Applications, app)
	}
	return groups
}

// Preview returns the cover letter as shown in the list view.
func Preview(app types.Application) string {
	text := strings.TrimSpace(app.CoverLetter)
	if utf8.RuneCountInString(text) <= PreviewLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:PreviewLength]) + "..."
}

// Open shows the detail overlay for an application.
func (b *ApplicationBoard) Open(id types.ID) error {
	if _, ok := b.list.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	b.mu.Lock()
	b.detail = id
	b.mu.Unlock()
	return nil
}

// Detail returns the application in the overlay, if one is open.
func (b *ApplicationBoard) Detail() (types.Application, bool) {
	b.mu.Lock()
	id := b.detail
	b.mu.Unlock()
	if id.IsZero() {
		return types.Application{}, false
	}
	return b.list.Get(id)
}

// CloseDetail hides the overlay.
func (b *ApplicationBoard) CloseDetail() {
	b.mu.Lock()
	b.detail = ""
	b.mu.Unlock()
}

// Shortlist moves a pending application to shortlisted.
func (b *ApplicationBoard) Shortlist(ctx context.Context, id types.ID, message string) error {
	return b.transition(ctx, id, status.ActionShortlist, message)
}

// Reject moves a pending application to rejected.
func (b *ApplicationBoard) Reject(ctx context.Context, id types.ID, message string) error {
	return b.transition(ctx, id, status.ActionReject, message)
}

// Hire moves a shortlisted application to hired.
func (b *ApplicationBoard) Hire(ctx context.Context, id types.ID, message string) error {
	return b.transition(ctx, id, status.ActionHire, message)
}

func (b *ApplicationBoard) transition(ctx context.Context, id types.ID, action status.Action, message string) error {
	if _, err := b.list.Transition(ctx, id, action, message); err != nil {
		return err
	}
	b.mu.Lock()
	if b.detail == id {
		b.detail = ""
	}
	b.mu.Unlock()
	return nil
}

// CVSaveName is the local file name for an applicant's CV.
func CVSaveName(app types.Application) string {
	name := strings.TrimSpace(app.FullName)
	if name == "" {
		name = "applicant"
	}
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	return name + "_CV." + app.CVExtension()
}

// DownloadCV fetches an applicant's CV and hands it to saver.
// Nothing is saved when the download is empty.
func (b *ApplicationBoard) DownloadCV(ctx context.Context, id types.ID, saver Saver) (string, error) {
	app, ok := b.list.Get(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	data, err := b.svc.DownloadCV(ctx, app.CVFileName())
	if err != nil {
		b.opts.logger.Printf("[board] CV download for application %s failed: %v", id, err)
		return "", &DownloadError{Message: downloadMessage(err), Cause: err}
	}
	if len(data) == 0 {
		return "", ErrEmptyCV
	}

	return saver.Save(CVSaveName(app), data)
}

func downloadMessage(err error) string {
	switch {
	case api.IsKind(err, api.KindNotFound):
		return "CV file not found. It may have been removed."
	case api.IsKind(err, api.KindUnauthorized):
		return "Authentication failed. Please log in again to download the CV."
	case api.IsKind(err, api.KindForbidden):
		return "You do not have permission to download this CV."
	case api.StatusCode(err) != 0:
		return fmt.Sprintf("Failed to download CV (status %d).", api.StatusCode(err))
	default:
		return "Failed to download CV: " + api.UserMessage(err)
	}
}

// Highlight marks an application for HighlightDuration.
func (b *ApplicationBoard) Highlight(id types.ID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.highlight = id
	b.highlightUntil = b.opts.now().Add(HighlightDuration)
}

// Highlighted reports whether id is currently highlighted.
func (b *ApplicationBoard) Highlighted(id types.ID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !id.IsZero() && b.highlight == id && b.opts.now().Before(b.highlightUntil)
}
