package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const settleDelay = 150 * time.Millisecond

// ChangeKind says which part of the prefab data a Change touched.
type ChangeKind uint8

const (
	CatalogChanged ChangeKind = 1 << iota
	ScriptChanged
)

// Change is one burst of edits, delivered once the files have been quiet
// for a short while. Editors that save through a temp file produce several
// events per save; they arrive here as a single Change.
type Change struct {
	Kind  ChangeKind
	Files []string
}

func (c Change) Has(kind ChangeKind) bool {
	return c.Kind&kind != 0
}

// Watcher turns file system events in the override directories into
// Changes.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error

	settle  time.Duration
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches every existing directory in dirs. Missing directories
// are skipped so the embedded catalog still works without a checkout.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Changes: make(chan Change, 4),
		Errors:  make(chan error, 1),
		settle:  settleDelay,
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) WatchedDirs() []string {
	if w == nil {
		return nil
	}
	return w.fs.WatchList()
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Changes)
	defer close(w.Errors)

	var (
		pending Change
		seen    = map[string]bool{}
		timer   *time.Timer
		due     <-chan time.Time
	)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			kind := classify(event)
			if kind == 0 {
				continue
			}
			pending.Kind |= kind
			if !seen[event.Name] {
				seen[event.Name] = true
				pending.Files = append(pending.Files, event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.settle)
			} else {
				timer.Reset(w.settle)
			}
			due = timer.C
		case <-due:
			due = nil
			select {
			case w.Changes <- pending:
			case <-w.closeCh:
				return
			}
			pending = Change{}
			seen = map[string]bool{}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func classify(event fsnotify.Event) ChangeKind {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return 0
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".yaml", ".yml":
		return CatalogChanged
	case ".tengo":
		return ScriptChanged
	}
	return 0
}
