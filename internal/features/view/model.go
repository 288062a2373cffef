package view

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const viewExt = ".json"

var (
	ErrNotFound       = errors.New("view path not found")
	ErrIsAFolder      = errors.New("view path is a folder")
	ErrDuplicateView  = errors.New("view name is a duplicate")
	ErrSchemaMismatch = errors.New("view data does not match the save structure")
	ErrInvalidPath    = errors.New("invalid view path")
)

// saveKeys is the exact key set accepted by create and update.
var saveKeys = []string{"folder", "view", "filters"}

// SaveRequest identifies a view by folder and name and carries its filter settings.
type SaveRequest struct {
	Folder  string         `json:"folder"`
	View    string         `json:"view"`
	Filters map[string]any `json:"filters"`
}

// Path is the folder-relative identity of the view, without extension.
func (r *SaveRequest) Path() string {
	folder := strings.TrimSpace(r.Folder)
	name := strings.TrimSpace(r.View)
	if folder == "" {
		return name
	}
	return strings.TrimSuffix(folder, "/") + "/" + name
}

// Listing is the content of one folder of the views tree.
type Listing struct {
	Folders []string `json:"folders"`
	Views   []string `json:"views"`
}

// MoveRequest relocates a view or a folder into an existing destination folder.
type MoveRequest struct {
	Src  string `json:"src"`
	Dest string `json:"dest"`
}

// Validate checks that payload has exactly the save keys and decodes it.
// Both missing and unneeded keys are named in the error.
func Validate(payload map[string]any) (*SaveRequest, error) {
	var missing, unneeded []string
	for _, k := range saveKeys {
		if _, ok := payload[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range payload {
		if !isSaveKey(k) {
			unneeded = append(unneeded, k)
		}
	}
	sort.Strings(unneeded)

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "missing following needed info: "+strings.Join(missing, ","))
	}
	if len(unneeded) > 0 {
		problems = append(problems, "having following additional unneeded info: "+strings.Join(unneeded, ","))
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(problems, "; "))
	}

	folder, ok := payload["folder"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: folder must be a string", ErrSchemaMismatch)
	}
	name, ok := payload["view"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: view must be a non-empty string", ErrSchemaMismatch)
	}
	filters, ok := payload["filters"].(map[string]any)
	if !ok {
		if payload["filters"] != nil {
			return nil, fmt.Errorf("%w: filters must be an object", ErrSchemaMismatch)
		}
		filters = map[string]any{}
	}

	return &SaveRequest{Folder: folder, View: name, Filters: filters}, nil
}

func isSaveKey(k string) bool {
	for _, s := range saveKeys {
		if s == k {
			return true
		}
	}
	return false
}
