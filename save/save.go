// Package save persists entity dumps as files, one file per save slot.
// The file extension follows the encoding.
package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathoo/rpgkit/logger"
	"github.com/nathoo/rpgkit/model/entity"
)

// ErrBadName is returned for save names that are empty or contain a path.
var ErrBadName = errors.New("invalid save name")

// Path returns the file a save slot is stored in.
func Path(dir, name string, format entity.Format) (string, error) {
	if !format.Structured() {
		return "", fmt.Errorf("save %q: %w %q", name, entity.ErrUnsupportedFormat, format)
	}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return filepath.Join(dir, name+"."+string(format)), nil
}

// Write dumps e into dir/name.<format>, creating dir when needed.
func Write(dir, name string, e *entity.Entity, format entity.Format) (string, error) {
	path, err := Path(dir, name, format)
	if err != nil {
		return "", err
	}
	data, err := e.Dump(format)
	if err != nil {
		return "", fmt.Errorf("dump %s: %w", e.Name, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return "", fmt.Errorf("write save: %w", err)
	}
	logger.Log.WithField("path", path).Debug("saved entity")
	return path, nil
}

// Read decodes the entity stored in dir/name.<format>.
func Read(dir, name string, format entity.Format) (*entity.Entity, error) {
	path, err := Path(dir, name, format)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	e, err := entity.Decode(string(data), format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	logger.Log.WithField("path", path).Debug("loaded entity")
	return e, nil
}

// List returns the save slot names in dir for the given format, sorted.
// A missing dir has no saves.
func List(dir string, format entity.Format) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	ext := "." + string(format)
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
			names = append(names, strings.TrimSuffix(e.Name(), ext))
		}
	}
	sort.Strings(names)
	return names, nil
}
