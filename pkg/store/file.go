// Package store persists the activity log as a single JSON document.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/tracker/pkg/activity"
)

const indent = "    "

// CorruptMessage is shown when the activity log can not be parsed.
const CorruptMessage = "Error: The activity log file is corrupted. Creating a new file."

// ErrCorrupt is returned by Load, along with an empty tree, when the file
// exists but does not hold a JSON object.
var ErrCorrupt = errors.New("activity log is corrupted")

// Persistence defines the persistence contract for the activity log.
type Persistence interface {
	// Load reads the whole tree. A missing file is an empty tree.
	Load() (*activity.Tree, error)
	// Save overwrites the file with the whole tree.
	Save(tree *activity.Tree) error
	// Path is the file backing the log.
	Path() string
	// Watch streams change notifications for the file until ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}

// Open creates a Persistence for the file at cfg.Path. A nil cfg loads the
// default configuration.
func Open(cfg *Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig("")
		if err != nil {
			return nil, err
		}
	}
	if cfg.Path == "" {
		return nil, errors.New("store: activity log path required")
	}

	dir, key := filepath.Dir(cfg.Path), filepath.Base(cfg.Path)
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath: dir,
			PathPerm: 0o755,
			FilePerm: 0o644,
		}),
		dir:  dir,
		key:  key,
		path: cfg.Path,
	}, nil
}

type persistence struct {
	d    *diskv.Diskv
	dir  string
	key  string
	path string
}

func (p *persistence) Path() string {
	return p.path
}

func (p *persistence) Load() (*activity.Tree, error) {
	data, err := p.d.Read(p.key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("no activity log yet", "path", p.path)
			return activity.New(), nil
		}
		return nil, fmt.Errorf("store: read %s: %w", p.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return activity.New(), nil
	}

	tree := activity.New()
	if err := json.Unmarshal(data, tree); err != nil {
		log.Debug("discarding unreadable activity log", "path", p.path, "err", err)
		return activity.New(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	log.Debug("loaded activity log", "path", p.path, "bytes", len(data))
	return tree, nil
}

func (p *persistence) Save(tree *activity.Tree) error {
	data, err := Encode(tree)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	if err := p.d.Write(p.key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", p.path, err)
	}
	log.Debug("saved activity log", "path", p.path, "bytes", len(data))
	return nil
}

// Encode renders the tree the way it is stored: indented by four spaces, in
// insertion order, without HTML escaping.
func Encode(tree *activity.Tree) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(tree); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// LoadOrWarn loads the tree and, when the file is corrupted, writes
// CorruptMessage to w and carries on with an empty tree.
func LoadOrWarn(p Persistence, w io.Writer) (*activity.Tree, error) {
	tree, err := p.Load()
	if errors.Is(err, ErrCorrupt) {
		_, _ = fmt.Fprintln(w, CorruptMessage)
		return tree, nil
	}
	return tree, err
}
