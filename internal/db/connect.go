package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:aulanet.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/aulanet?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Grade entries intentionally carry no unique constraint on
// (evaluation_id, subject_key): uniqueness is a convention of the external
// grading workflow, and the read path must detect violations rather than
// let the database silently hide them.
const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS students (
  id TEXT PRIMARY KEY,
  display_name TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'student',
  password_hash TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS course_groups (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS rubrics (
  id TEXT PRIMARY KEY,
  group_id TEXT NOT NULL REFERENCES course_groups(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  weight_percent NUMERIC NOT NULL DEFAULT 0,
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS evaluations (
  id TEXT PRIMARY KEY,
  rubric_id TEXT NOT NULL REFERENCES rubrics(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  due_at INTEGER,
  weight_percent NUMERIC NOT NULL DEFAULT 0,
  is_group_work INTEGER NOT NULL DEFAULT 0,
  has_deliverable INTEGER NOT NULL DEFAULT 0,
  required_group_size INTEGER NOT NULL DEFAULT 0,
  spec_file_ref TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS work_groups (
  id TEXT PRIMARY KEY,
  evaluation_id TEXT NOT NULL REFERENCES evaluations(id) ON DELETE CASCADE,
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS work_group_members (
  work_group_id TEXT NOT NULL REFERENCES work_groups(id) ON DELETE CASCADE,
  student_id TEXT NOT NULL,
  PRIMARY KEY (work_group_id, student_id)
);

CREATE TABLE IF NOT EXISTS grade_entries (
  evaluation_id TEXT NOT NULL REFERENCES evaluations(id) ON DELETE CASCADE,
  subject_key TEXT NOT NULL,
  score_percent NUMERIC NOT NULL DEFAULT 0,
  is_published INTEGER NOT NULL DEFAULT 0,
  remarks TEXT NOT NULL DEFAULT '',
  detail_file_ref TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS students (
  id TEXT PRIMARY KEY,
  display_name TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'student',
  password_hash TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS course_groups (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS rubrics (
  id TEXT PRIMARY KEY,
  group_id TEXT NOT NULL REFERENCES course_groups(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  weight_percent NUMERIC(5,2) NOT NULL DEFAULT 0,
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS evaluations (
  id TEXT PRIMARY KEY,
  rubric_id TEXT NOT NULL REFERENCES rubrics(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  due_at BIGINT,
  weight_percent NUMERIC(5,2) NOT NULL DEFAULT 0,
  is_group_work BOOLEAN NOT NULL DEFAULT FALSE,
  has_deliverable BOOLEAN NOT NULL DEFAULT FALSE,
  required_group_size INTEGER NOT NULL DEFAULT 0,
  spec_file_ref TEXT NOT NULL DEFAULT '',
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS work_groups (
  id TEXT PRIMARY KEY,
  evaluation_id TEXT NOT NULL REFERENCES evaluations(id) ON DELETE CASCADE,
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS work_group_members (
  work_group_id TEXT NOT NULL REFERENCES work_groups(id) ON DELETE CASCADE,
  student_id TEXT NOT NULL,
  PRIMARY KEY (work_group_id, student_id)
);

CREATE TABLE IF NOT EXISTS grade_entries (
  evaluation_id TEXT NOT NULL REFERENCES evaluations(id) ON DELETE CASCADE,
  subject_key TEXT NOT NULL,
  score_percent NUMERIC(5,2) NOT NULL DEFAULT 0,
  is_published BOOLEAN NOT NULL DEFAULT FALSE,
  remarks TEXT NOT NULL DEFAULT '',
  detail_file_ref TEXT NOT NULL DEFAULT '',
  created_at BIGINT NOT NULL
);
`
