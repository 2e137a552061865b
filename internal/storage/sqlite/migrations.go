package sqlite

import "database/sql"

// schema sets up the database on startup.
// students holds the current roster; position keeps roster order since
// student_id is not unique. snapshots records one row per save.
const schema = `
CREATE TABLE IF NOT EXISTS students (
    position INTEGER PRIMARY KEY,
    student_id TEXT NOT NULL,
    name TEXT NOT NULL,
    gender TEXT NOT NULL,
    class_name TEXT NOT NULL,
    score1 INTEGER NOT NULL,
    score2 INTEGER NOT NULL,
    score3 INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
    id TEXT PRIMARY KEY,
    created_at INTEGER NOT NULL,
    student_count INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_students_class_name ON students(class_name);
CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
