package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// RawEndpoint names a family of raw files by a glob relative to the store root.
type RawEndpoint struct {
	Name string
	Glob string
}

// ClassicEndpoints is the raw layout the fetch client writes.
var ClassicEndpoints = []RawEndpoint{
	{"bootstrap-static", "bootstrap/bootstrap-static.json"},
	{"entry", "entry/*/entry.json"},
	{"entry-history", "entry/*/history.json"},
	{"entry-transfers", "entry/*/transfers.json"},
	{"entry-picks", "entry/*/gw/*/picks.json"},
	{"event-live", "gw/*/live.json"},
}

type Inventory struct {
	RawRoot   string           `json:"raw_root"`
	Endpoints []EndpointSchema `json:"endpoints"`
	Skipped   []string         `json:"skipped"`
}

type EndpointSchema struct {
	Name         string  `json:"name"`
	FilesScanned int     `json:"files_scanned"`
	Fields       []Field `json:"fields"`
}

type Field struct {
	Path  string   `json:"path"`
	Types []string `json:"types"`
}

type typeSet map[string]struct{}

// Inventory walks every file of each endpoint and records the JSON types seen
// at each path. Arrays are sampled by their first element. maxFiles caps the
// files read per endpoint (0 = all). Unreadable files are listed in Skipped.
func (s *JSONStore) Inventory(endpoints []RawEndpoint, maxFiles int) (*Inventory, error) {
	inv := &Inventory{
		RawRoot:   s.Root,
		Endpoints: make([]EndpointSchema, 0, len(endpoints)),
		Skipped:   []string{},
	}
	for _, ep := range endpoints {
		files, err := filepath.Glob(s.Path(ep.Glob))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", ep.Name, err)
		}
		sort.Strings(files)
		if maxFiles > 0 && len(files) > maxFiles {
			files = files[:maxFiles]
		}
		if len(files) == 0 {
			continue
		}

		schema := make(map[string]typeSet)
		scanned := 0
		for _, f := range files {
			rel, err := filepath.Rel(s.Root, f)
			if err != nil {
				rel = f
			}
			var v any
			if err := s.ReadJSON(rel, &v); err != nil {
				inv.Skipped = append(inv.Skipped, rel)
				continue
			}
			walkSchema(v, "$", schema)
			scanned++
		}
		inv.Endpoints = append(inv.Endpoints, EndpointSchema{
			Name:         ep.Name,
			FilesScanned: scanned,
			Fields:       schemaFields(schema),
		})
	}
	return inv, nil
}

func walkSchema(v any, path string, schema map[string]typeSet) {
	switch x := v.(type) {
	case map[string]any:
		addType(schema, path, "object")
		for k, child := range x {
			walkSchema(child, path+"."+k, schema)
		}
	case []any:
		addType(schema, path, "array")
		if len(x) > 0 {
			walkSchema(x[0], path+"[]", schema)
		} else {
			addType(schema, path+"[]", "unknown")
		}
	case string:
		addType(schema, path, "string")
	case bool:
		addType(schema, path, "bool")
	case float64:
		addType(schema, path, "number")
	case nil:
		addType(schema, path, "null")
	default:
		addType(schema, path, fmt.Sprintf("%T", v))
	}
}

func addType(schema map[string]typeSet, path, typ string) {
	set, ok := schema[path]
	if !ok {
		set = make(typeSet)
		schema[path] = set
	}
	set[typ] = struct{}{}
}

func schemaFields(schema map[string]typeSet) []Field {
	paths := make([]string, 0, len(schema))
	for p := range schema {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	fields := make([]Field, 0, len(paths))
	for _, p := range paths {
		types := make([]string, 0, len(schema[p]))
		for t := range schema[p] {
			types = append(types, t)
		}
		sort.Strings(types)
		fields = append(fields, Field{Path: p, Types: types})
	}
	return fields
}

func WriteInventory(path string, inv *Inventory) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
