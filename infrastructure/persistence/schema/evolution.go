package schema

import (
	"fmt"
	"strings"
	"time"

	pkgerrors "sketchddd/pkg/errors"
)

// CurrentVersion is the schema version written by this module
const CurrentVersion = 2

// VersionField is the document key holding the schema version
const VersionField = "schema_version"

// Document is an untyped decoded model document
type Document = map[string]interface{}

// SchemaVersion records one applied migration
type SchemaVersion struct {
	Version     int       `json:"version"`
	Description string    `json:"description"`
	AppliedAt   time.Time `json:"applied_at"`
}

// Migration upgrades a document by exactly one version
type Migration struct {
	FromVersion int
	ToVersion   int
	Description string
	Up          MigrationFunc
}

// MigrationFunc rewrites a document in place
type MigrationFunc func(doc Document) error

// SchemaEvolution upgrades stored model documents to CurrentVersion
type SchemaEvolution struct {
	targetVersion int
	migrations    []Migration
}

// NewSchemaEvolution creates an evolution manager with the built-in migrations
func NewSchemaEvolution() *SchemaEvolution {
	s := &SchemaEvolution{targetVersion: CurrentVersion}
	for _, m := range builtinMigrations() {
		if err := s.RegisterMigration(m); err != nil {
			panic(err)
		}
	}
	return s
}

// RegisterMigration registers a new single-step migration
func (s *SchemaEvolution) RegisterMigration(migration Migration) error {
	if migration.ToVersion != migration.FromVersion+1 {
		return fmt.Errorf("invalid migration: %d->%d must advance exactly one version",
			migration.FromVersion, migration.ToVersion)
	}
	if migration.Up == nil {
		return fmt.Errorf("invalid migration: %d->%d has no Up function",
			migration.FromVersion, migration.ToVersion)
	}
	if s.findMigration(migration.FromVersion) != nil {
		return fmt.Errorf("migration from %d to %d already exists",
			migration.FromVersion, migration.ToVersion)
	}
	s.migrations = append(s.migrations, migration)
	return nil
}

// Upgrade migrates doc to the current version and returns the applied steps.
// A document without a version field is treated as version 1.
func (s *SchemaEvolution) Upgrade(doc Document) ([]SchemaVersion, error) {
	version, err := documentVersion(doc)
	if err != nil {
		return nil, err
	}
	if version < 1 || version > s.targetVersion {
		return nil, pkgerrors.NewUnsupportedSchemaError(version)
	}

	var history []SchemaVersion
	for version < s.targetVersion {
		migration := s.findMigration(version)
		if migration == nil {
			return history, fmt.Errorf("no migration found from version %d to %d", version, version+1)
		}
		if err := migration.Up(doc); err != nil {
			return history, fmt.Errorf("migration %d->%d failed: %w",
				migration.FromVersion, migration.ToVersion, err)
		}
		version = migration.ToVersion
		doc[VersionField] = version
		history = append(history, SchemaVersion{
			Version:     version,
			Description: migration.Description,
			AppliedAt:   time.Now(),
		})
	}
	return history, nil
}

// TargetVersion returns the version documents are upgraded to
func (s *SchemaEvolution) TargetVersion() int {
	return s.targetVersion
}

func (s *SchemaEvolution) findMigration(from int) *Migration {
	for i := range s.migrations {
		if s.migrations[i].FromVersion == from {
			return &s.migrations[i]
		}
	}
	return nil
}

func documentVersion(doc Document) (int, error) {
	raw, ok := doc[VersionField]
	if !ok || raw == nil {
		return 1, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be an integer, got %v", VersionField, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", VersionField, raw)
	}
}

// Version 1 documents named the map list "maps" and spelled relationship
// patterns in snake_case, e.g. "customer_supplier".
func builtinMigrations() []Migration {
	return []Migration{
		{
			FromVersion: 1,
			ToVersion:   2,
			Description: "rename maps to context_maps and use CamelCase pattern names",
			Up: func(doc Document) error {
				if maps, ok := doc["maps"]; ok {
					if _, exists := doc["context_maps"]; !exists {
						doc["context_maps"] = maps
					}
					delete(doc, "maps")
				}
				list, ok := doc["context_maps"].([]interface{})
				if !ok {
					return nil
				}
				for i, item := range list {
					cm, ok := item.(map[string]interface{})
					if !ok {
						return fmt.Errorf("context map %d is not an object", i)
					}
					if p, ok := cm["pattern"].(string); ok {
						cm["pattern"] = camelCase(p)
					}
				}
				return nil
			},
		},
	}
}

func camelCase(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
