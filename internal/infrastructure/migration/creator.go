// Package migration runs and scaffolds the SQL schema migrations.
package migration

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"
)

// versionWidth is the zero padding of sequential migration versions
const versionWidth = 6

var migrationFileRe = regexp.MustCompile(`^(\d+)_(.+)\.(up|down)\.sql$`)

var nonWordRe = regexp.MustCompile(`[^a-z0-9]+`)

var migrationTmpl = template.Must(template.New("migration").Parse(
	`-- {{.Version}} {{.Name}} ({{.Direction}})
-- Created: {{.Created}}
{{- if .Description}}
-- {{.Description}}
{{- end}}

`))

// MigrationInfo describes one migration pair found on disk
type MigrationInfo struct {
	Version uint
	Name    string
	HasDown bool
}

// CreatedMigration is the result of CreateMigration
type CreatedMigration struct {
	Version  string
	UpPath   string
	DownPath string
}

// CreateMigration writes an empty up/down pair numbered after the highest
// existing version in dir
func CreateMigration(dir, name, description string) (*CreatedMigration, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	existing, err := ListMigrations(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	var next uint = 1
	if n := len(existing); n > 0 {
		next = existing[n-1].Version + 1
	}
	version := fmt.Sprintf("%0*d", versionWidth, next)

	base := filepath.Join(dir, version+"_"+slug)
	created := &CreatedMigration{
		Version:  version,
		UpPath:   base + ".up.sql",
		DownPath: base + ".down.sql",
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, f := range []struct{ path, direction string }{
		{created.UpPath, "up"},
		{created.DownPath, "down"},
	} {
		if err := writeMigrationFile(f.path, map[string]string{
			"Version":     version,
			"Name":        slug,
			"Direction":   f.direction,
			"Created":     now,
			"Description": description,
		}); err != nil {
			_ = os.Remove(created.UpPath)
			return nil, err
		}
	}
	return created, nil
}

func writeMigrationFile(path string, data map[string]string) error {
	// O_EXCL so a version collision never clobbers an existing migration
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := migrationTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// sanitizeName lower-cases name and collapses everything else to underscores
func sanitizeName(name string) string {
	return strings.Trim(nonWordRe.ReplaceAllString(strings.ToLower(name), "_"), "_")
}

// ListMigrations returns the migrations in fsys ordered by version. A missing
// directory yields an empty list.
func ListMigrations(fsys fs.FS) ([]MigrationInfo, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	byVersion := map[uint]*MigrationInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := migrationFileRe.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		v, err := strconv.ParseUint(match[1], 10, 64)
		if err != nil {
			continue
		}
		info, ok := byVersion[uint(v)]
		if !ok {
			info = &MigrationInfo{Version: uint(v), Name: match[2]}
			byVersion[uint(v)] = info
		}
		if match[3] == "down" {
			info.HasDown = true
		}
	}

	out := make([]MigrationInfo, 0, len(byVersion))
	for _, info := range byVersion {
		out = append(out, *info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}
