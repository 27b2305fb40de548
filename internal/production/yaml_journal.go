package production

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// YAMLJournal appends entries to one multi-document YAML file per machine.
type YAMLJournal struct {
	dir    string
	mu     sync.Mutex
	closed bool
}

var _ Journal = (*YAMLJournal)(nil)

// NewYAMLJournal creates a YAMLJournal, ensuring the directory exists.
func NewYAMLJournal(dir string) (*YAMLJournal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLJournal{dir: dir}, nil
}

func (j *YAMLJournal) path(machine string) string {
	return filepath.Join(j.dir, machine+".yaml")
}

func (j *YAMLJournal) Append(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := yaml.Marshal(e)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrJournalClosed
	}

	fn := j.path(e.Machine)
	f, err := os.OpenFile(fn, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", fn, err)
	}
	if _, err := f.Write(append([]byte("---\n"), data...)); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return f.Close()
}

func (j *YAMLJournal) Entries(ctx context.Context, machine string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, ErrJournalClosed
	}

	fn := j.path(machine)
	f, err := os.Open(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	defer f.Close()

	var out []Entry
	dec := yaml.NewDecoder(f)
	for {
		var e Entry
		if err := dec.Decode(&e); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("yaml unmarshal %s: %w", fn, err)
		}
		out = append(out, e)
	}
}

func (j *YAMLJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.closed = true
	return nil
}
