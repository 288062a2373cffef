package view

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go-reporting/internal/config"
)

// ViewRepository stores views as JSON files under a root folder.
// Paths are slash separated and relative to the root; view paths carry no extension.
type ViewRepository interface {
	List(path string) (*Listing, error)
	Read(view string) (map[string]any, error)
	Exists(folder, name string) (bool, error)
	Write(folder, name string, filters map[string]any) error
	Delete(path string) error
	Move(src, dest string) error
}

type ViewRepositoryImpl struct {
	root string
}

// NewViewRepository creates the root folder when it does not exist yet.
func NewViewRepository(cfg *config.Config) (ViewRepository, error) {
	return newViewRepository(cfg.ViewsRoot)
}

func newViewRepository(root string) (*ViewRepositoryImpl, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create views root: %w", err)
	}
	return &ViewRepositoryImpl{root: abs}, nil
}

// resolve maps a relative path onto the root and rejects anything escaping it.
func (r *ViewRepositoryImpl) resolve(rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	full := filepath.Join(r.root, filepath.FromSlash(rel))
	if full != r.root && !strings.HasPrefix(full, r.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, rel)
	}
	return full, nil
}

func (r *ViewRepositoryImpl) filePath(folder, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: invalid view name %q", ErrInvalidPath, name)
	}
	dir, err := r.resolve(folder)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+viewExt), nil
}

func (r *ViewRepositoryImpl) List(path string) (*Listing, error) {
	dir, err := r.resolve(path)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}

	listing := &Listing{Folders: []string{}, Views: []string{}}
	for _, e := range entries {
		switch {
		case e.IsDir():
			listing.Folders = append(listing.Folders, e.Name())
		case e.Type().IsRegular() && strings.HasSuffix(e.Name(), viewExt):
			listing.Views = append(listing.Views, strings.TrimSuffix(e.Name(), viewExt))
		}
	}
	return listing, nil
}

func (r *ViewRepositoryImpl) Read(view string) (map[string]any, error) {
	if strings.TrimSpace(view) == "" {
		return nil, fmt.Errorf("%w: no view name provided", ErrNotFound)
	}
	full, err := r.resolve(view + viewExt)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(full)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		if dir, derr := r.resolve(view); derr == nil && exists(dir) {
			return nil, fmt.Errorf("%w: %s", ErrIsAFolder, view)
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, view)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrIsAFolder, view)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, err
	}
	filters := map[string]any{}
	if err := json.Unmarshal(data, &filters); err != nil {
		return nil, fmt.Errorf("decode view %s: %w", view, err)
	}
	return filters, nil
}

func (r *ViewRepositoryImpl) Exists(folder, name string) (bool, error) {
	full, err := r.filePath(folder, name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Write creates intermediate folders and overwrites any existing file.
func (r *ViewRepositoryImpl) Write(folder, name string, filters map[string]any) error {
	full, err := r.filePath(folder, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create view folder: %w", err)
	}
	if filters == nil {
		filters = map[string]any{}
	}
	data, err := json.MarshalIndent(filters, "", "    ")
	if err != nil {
		return fmt.Errorf("encode view: %w", err)
	}
	return os.WriteFile(full, data, 0o644)
}

// Delete removes a view file or a whole folder tree. "<path>.json" wins over a
// same-named folder.
func (r *ViewRepositoryImpl) Delete(path string) error {
	full, err := r.resolve(path)
	if err != nil {
		return err
	}
	if full == r.root {
		return fmt.Errorf("%w: refusing to delete the views root", ErrInvalidPath)
	}

	if isRegular(full + viewExt) {
		return os.Remove(full + viewExt)
	}
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return err
	}
	if info.Mode().IsRegular() {
		return os.Remove(full)
	}
	return os.RemoveAll(full)
}

// Move places src inside the existing folder dest. A "<src>.json" file takes
// priority over a folder named src.
func (r *ViewRepositoryImpl) Move(src, dest string) error {
	fullSrc, err := r.resolve(src)
	if err != nil {
		return err
	}
	fullDest, err := r.resolve(dest)
	if err != nil {
		return err
	}

	destInfo, err := os.Stat(fullDest)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: destination path %s does not exist", ErrNotFound, dest)
		}
		return err
	}
	if !destInfo.IsDir() {
		return fmt.Errorf("%w: destination path %s is not a folder", ErrNotFound, dest)
	}

	switch {
	case isRegular(fullSrc + viewExt):
		fullSrc += viewExt
	case !exists(fullSrc):
		return fmt.Errorf("%w: source path %s does not exist", ErrNotFound, src)
	}
	if fullSrc == r.root {
		return fmt.Errorf("%w: refusing to move the views root", ErrInvalidPath)
	}

	target := filepath.Join(fullDest, filepath.Base(fullSrc))
	if strings.HasPrefix(target, fullSrc+string(filepath.Separator)) {
		return fmt.Errorf("%w: cannot move %s into itself", ErrInvalidPath, src)
	}
	if exists(target) {
		return fmt.Errorf("%w: %s already exists in %s", ErrDuplicateView, filepath.Base(fullSrc), dest)
	}
	return os.Rename(fullSrc, target)
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
