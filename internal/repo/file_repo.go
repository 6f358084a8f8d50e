package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"roombooking/internal/models"
)

// The file backend keeps each record as one JSON object keyed by id, in
// insertion order. Every write replaces the whole file atomically.

type catalogRepoFile struct {
	path string

	mu     sync.Mutex
	loaded bool
	rooms  []models.Room
}

func NewCatalogRepoFile(path string) CatalogRepo { return &catalogRepoFile{path: path} }

func (r *catalogRepoFile) load() (bool, error) {
	if r.loaded {
		return len(r.rooms) > 0, nil
	}
	keys, raws, err := readOrdered(r.path)
	if err != nil {
		return false, err
	}
	rooms := make([]models.Room, 0, len(keys))
	for i, k := range keys {
		var room models.Room
		if err := json.Unmarshal(raws[i], &room); err != nil {
			return false, fmt.Errorf("%s: room %s: %w", r.path, k, err)
		}
		if room.ID == "" {
			room.ID = k
		}
		rooms = append(rooms, room)
	}
	r.rooms, r.loaded = rooms, true
	return len(rooms) > 0, nil
}

func (r *catalogRepoFile) Load(_ context.Context) ([]models.Room, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ok, err := r.load()
	if err != nil {
		return nil, false, err
	}
	return append([]models.Room(nil), r.rooms...), ok, nil
}

func (r *catalogRepoFile) SaveRoom(_ context.Context, room models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.load(); err != nil {
		return err
	}
	next := append([]models.Room(nil), r.rooms...)
	found := false
	for i := range next {
		if next[i].ID == room.ID {
			next[i] = room
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("room %s is not in the catalog", room.ID)
	}
	if err := r.write(next); err != nil {
		return err
	}
	r.rooms = next
	return nil
}

func (r *catalogRepoFile) SaveAll(_ context.Context, rooms []models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := append([]models.Room(nil), rooms...)
	if err := r.write(next); err != nil {
		return err
	}
	r.rooms, r.loaded = next, true
	return nil
}

func (r *catalogRepoFile) write(rooms []models.Room) error {
	keys := make([]string, len(rooms))
	vals := make([]any, len(rooms))
	for i, room := range rooms {
		keys[i] = room.ID
		vals[i] = roomRecord(room)
	}
	return writeOrdered(r.path, keys, vals)
}

type ledgerRepoFile struct {
	path string

	mu      sync.Mutex
	loaded  bool
	entries []models.Booking
}

func NewLedgerRepoFile(path string) LedgerRepo { return &ledgerRepoFile{path: path} }

func (r *ledgerRepoFile) load() error {
	if r.loaded {
		return nil
	}
	keys, raws, err := readOrdered(r.path)
	if err != nil {
		return err
	}
	entries := make([]models.Booking, 0, len(keys))
	for i, k := range keys {
		var b models.Booking
		if err := json.Unmarshal(raws[i], &b); err != nil {
			return fmt.Errorf("%s: booking %s: %w", r.path, k, err)
		}
		if b.ID == "" {
			b.ID = k
		}
		entries = append(entries, b)
	}
	r.entries, r.loaded = entries, true
	return nil
}

func (r *ledgerRepoFile) Append(ctx context.Context, b models.Booking) error {
	return r.AppendMany(ctx, []models.Booking{b})
}

func (r *ledgerRepoFile) AppendMany(_ context.Context, bs []models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.load(); err != nil {
		return err
	}
	next := append(append([]models.Booking(nil), r.entries...), bs...)
	keys := make([]string, len(next))
	vals := make([]any, len(next))
	for i, b := range next {
		keys[i], vals[i] = b.ID, b
	}
	if err := writeOrdered(r.path, keys, vals); err != nil {
		return err
	}
	r.entries = next
	return nil
}

func (r *ledgerRepoFile) LoadAll(_ context.Context) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.load(); err != nil {
		return nil, err
	}
	return append([]models.Booking(nil), r.entries...), nil
}

// Has looks at the file itself rather than the cached entries.
func (r *ledgerRepoFile) Has(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys, _, err := readOrdered(r.path)
	if err != nil {
		return false, err
	}
	for _, k := range keys {
		if k == id {
			return true, nil
		}
	}
	return false, nil
}

// readOrdered decodes a top-level JSON object without losing key order. A
// missing or empty file reads as an empty object.
func readOrdered(path string) ([]string, []json.RawMessage, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("%s: top level is not an object", path)
	}
	var keys []string
	var raws []json.RawMessage
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("%s: %s: %w", path, key, err)
		}
		keys = append(keys, key)
		raws = append(raws, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return keys, raws, nil
}

func writeOrdered(path string, keys []string, vals []any) error {
	var buf bytes.Buffer
	if len(keys) == 0 {
		buf.WriteString("{}\n")
	} else {
		buf.WriteString("{\n")
		for i, k := range keys {
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			vb, err := json.MarshalIndent(vals[i], "    ", "    ")
			if err != nil {
				return err
			}
			buf.WriteString("    ")
			buf.Write(kb)
			buf.WriteString(": ")
			buf.Write(vb)
			if i < len(keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString("}\n")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
