package db

import (
	"cmp"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var migrationFilePattern = regexp.MustCompile(`^(\d+)_[a-z0-9_]+\.sql$`)

// schemaMigration is one numbered SQL file split into statements.
type schemaMigration struct {
	Version    string
	Order      int
	Name       string
	Statements []string
}

type migrator struct {
	database *gorm.DB
	logger   logrus.FieldLogger
}

func newMigrator(database *gorm.DB, logger logrus.FieldLogger) *migrator {
	return &migrator{database: database, logger: logger.WithField("component", "migrations")}
}

// apply runs every migration in files whose version is not yet recorded in
// schema_migrations. Each migration commits together with its record.
func (m *migrator) apply(files fs.FS) error {
	const createTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := m.database.Exec(createTableSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := readMigrations(files)
	if err != nil {
		return err
	}

	var recorded []string
	if err := m.database.Raw(`SELECT version FROM schema_migrations`).Scan(&recorded).Error; err != nil {
		return fmt.Errorf("load applied migration versions: %w", err)
	}

	for _, migration := range pending {
		if slices.Contains(recorded, migration.Version) {
			continue
		}
		if err := m.run(migration); err != nil {
			return err
		}
		m.logger.WithField("migration", migration.Name).Info("migration applied")
	}
	return nil
}

func (m *migrator) run(migration schemaMigration) error {
	return m.database.Transaction(func(tx *gorm.DB) error {
		for i, statement := range migration.Statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s statement %d: %w", migration.Name, i+1, err)
			}
		}
		return tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			migration.Version,
			migration.Name,
		).Error
	})
}

// readMigrations loads NNNN_name.sql files from the root of files ordered by
// version. Other files are ignored.
func readMigrations(files fs.FS) ([]schemaMigration, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	migrations := make([]schemaMigration, 0, len(names))
	byVersion := make(map[string]string, len(names))
	for _, name := range names {
		matches := migrationFilePattern.FindStringSubmatch(path.Base(name))
		if matches == nil {
			continue
		}
		version := matches[1]
		if other, taken := byVersion[version]; taken {
			return nil, fmt.Errorf("migration version %s used by both %s and %s", version, other, name)
		}
		byVersion[version] = name

		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("migration %s: bad version: %w", name, err)
		}
		raw, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		statements := splitSQLStatements(string(raw))
		if len(statements) == 0 {
			return nil, fmt.Errorf("migration %s has no statements", name)
		}

		migrations = append(migrations, schemaMigration{
			Version:    version,
			Order:      order,
			Name:       name,
			Statements: statements,
		})
	}

	slices.SortFunc(migrations, func(a, b schemaMigration) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), strings.Compare(a.Name, b.Name))
	})
	return migrations, nil
}

// splitSQLStatements drops "--" comment lines and splits on semicolons.
// Statements must not contain literal semicolons.
func splitSQLStatements(sqlText string) []string {
	var body strings.Builder
	for line := range strings.Lines(sqlText) {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		body.WriteString(line)
	}

	statements := make([]string, 0)
	for part := range strings.SplitSeq(body.String(), ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
