package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
)

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

var (
	ErrNotFound = errors.New("task not found")
	ErrExists   = errors.New("task file already exists")
	ErrInvalid  = errors.New("invalid")
	timeNow     = func() time.Time { return time.Now() }
)

// Task lists. Done is never scanned for display; a completed task file
// is moved there and drops out of sight.
const (
	ListTodo  = "todo"
	ListToday = "today"
	ListDone  = "done"
)

const (
	idLength  = 6
	idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Task is the in-memory projection of one task file. The file is the
// sole source of truth; records are rebuilt on every scan.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Project     string     `json:"project"`
	Priority    int        `json:"priority"`
	Create      string     `json:"create"`
	Expire      *time.Time `json:"expire,omitempty"`
	Description string     `json:"description,omitempty"`
	List        string     `json:"list"`
	Path        string     `json:"-"`
}

// ExpireString formats the expiry in the metadata layout, empty when unset.
func (t Task) ExpireString() string {
	if t.Expire == nil {
		return ""
	}
	return t.Expire.Format(DateFormat)
}

// Store holds the task root directory and the lists scanned for open
// tasks. It is constructed once from explicit settings; there is no
// implicit global state.
type Store struct {
	Root  string
	lists []string
	log   *log.Logger
}

func New(root string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		Root:  root,
		lists: []string{ListTodo, ListToday},
		log:   logger,
	}
}

// AddOptions carries the field values for a new task. Zero priority
// falls back to the default of 1.
type AddOptions struct {
	Title    string
	Project  string
	Priority int
	Expire   string
}

// Add creates a new task file under todo/ with a freshly generated id.
// An id collision aborts the creation; there is no regeneration retry.
func (s *Store) Add(opts AddOptions) (Task, error) {
	id, err := newID(idLength)
	if err != nil {
		return Task{}, err
	}
	return s.createTask(id, opts)
}

func (s *Store) createTask(id string, opts AddOptions) (Task, error) {
	if opts.Priority == 0 {
		opts.Priority = 1
	}
	var expire *time.Time
	if v := strings.TrimSpace(opts.Expire); v != "" {
		t, err := time.Parse(DateFormat, v)
		if err != nil {
			return Task{}, fmt.Errorf("%w: expire %q does not match %q", ErrInvalid, v, DateFormat)
		}
		expire = &t
	}

	dir := filepath.Join(s.Root, ListTodo)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Task{}, err
	}
	path := filepath.Join(dir, id+".txt")
	if _, err := os.Stat(path); err == nil {
		return Task{}, fmt.Errorf("%w: %s", ErrExists, path)
	}

	task := Task{
		ID:       id,
		Title:    opts.Title,
		Project:  opts.Project,
		Priority: opts.Priority,
		Create:   timeNow().Format(DateFormat),
		Expire:   expire,
		List:     ListTodo,
		Path:     path,
	}
	if err := os.WriteFile(path, []byte(taskTemplate(task)), 0o644); err != nil {
		return Task{}, err
	}
	return task, nil
}

// taskTemplate renders the metadata block for a fresh task file. Key
// order matches the documented file format.
func taskTemplate(t Task) string {
	return strings.Join([]string{
		"---",
		"title: " + t.Title,
		"project: " + t.Project,
		fmt.Sprintf("priority: %d", t.Priority),
		"create: " + t.Create,
		"expire: " + t.ExpireString(),
		"id: " + t.ID,
		"---",
	}, "\n") + "\n\n\n"
}

// Find returns the path of the task file named <id>.txt under the open
// lists. Lists are searched in fixed order and each walk is lexical, so
// a duplicate id resolves deterministically to the todo/ copy.
func (s *Store) Find(id string) (string, error) {
	filename := id + ".txt"
	for _, list := range s.lists {
		var found string
		root := filepath.Join(s.Root, list)
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d == nil {
				return nil
			}
			if path != root && hidden(d.Name()) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if !d.IsDir() && d.Name() == filename {
				found = path
				return fs.SkipAll
			}
			return nil
		})
		if found != "" {
			return found, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Done relocates the task file for id into done/, keeping its filename.
// The move is a rename, atomic within one volume.
func (s *Store) Done(id string) (string, error) {
	path, err := s.Find(id)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(s.Root, ListDone)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dest := filepath.Join(dir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// Export writes a JSON snapshot of the open tasks, most urgent first,
// into dir and returns the snapshot path. ULID filenames keep snapshots
// unique and time-ordered without an existence-check loop.
func (s *Store) Export(dir string) (string, error) {
	tasks := s.OpenTasks()
	SortByUrgency(tasks)
	if tasks == nil {
		tasks = []Task{}
	}
	payload := map[string]any{
		"exported_at": timeNow().Format(time.RFC3339),
		"tasks":       tasks,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("tasks-%s.json", newULID()))
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%d", timeNow().UnixNano()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	// Rename is atomic on same filesystem.
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return path, nil
}

func newID(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	out := make([]byte, length)
	for i, b := range buf {
		out[i] = idCharset[int(b)%len(idCharset)]
	}
	return string(out), nil
}

func newULID() string {
	t := ulid.Timestamp(timeNow())
	entropy := ulid.Monotonic(randReader{}, 0)
	id, err := ulid.New(t, entropy)
	if err != nil {
		// fallback
		return fmt.Sprintf("%d", timeNow().UnixNano())
	}
	return id.String()
}
