package bus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// FileBus signals across processes on one machine by touching one file
// per topic inside a notifications directory and watching that directory
// with fsnotify. This is the "other browser tab" driver: every process
// sharing the same data dir observes every publish.
type FileBus struct {
	dir     string
	watcher *fsnotify.Watcher
	local   *LocalBus

	closeOnce sync.Once
	done      chan struct{}
}

// NewFileBus creates the notifications dir if needed and starts the
// watch loop.
func NewFileBus(dir string) (*FileBus, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("bus: create notifications dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("bus: fsnotify watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("bus: watch %s: %w", dir, err)
	}

	b := &FileBus{
		dir:     dir,
		watcher: watcher,
		local:   NewLocalBus(),
		done:    make(chan struct{}),
	}
	go b.loop()
	return b, nil
}

func (b *FileBus) Publish(ctx context.Context, topic string) error {
	// A fresh nonce guarantees a write event even when two publishes of
	// the same topic land within one mtime granularity window.
	nonce := fmt.Sprintf("%d\n", time.Now().UnixNano())
	path := filepath.Join(b.dir, topic)
	if err := os.WriteFile(path, []byte(nonce), 0o644); err != nil {
		return fmt.Errorf("bus: publish %s: %w", topic, err)
	}
	return nil
}

func (b *FileBus) Subscribe(topic string, fn Handler) func() {
	return b.local.Subscribe(topic, fn)
}

func (b *FileBus) Close() error {
	b.closeOnce.Do(func() {
		close(b.done)
		b.watcher.Close()
		b.local.Close()
	})
	return nil
}

func (b *FileBus) loop() {
	for {
		select {
		case <-b.done:
			return
		case ev, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			topic := filepath.Base(ev.Name)
			b.local.Publish(context.Background(), topic)
		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("bus: fsnotify error")
		}
	}
}
