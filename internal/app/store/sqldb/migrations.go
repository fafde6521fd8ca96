// internal/app/store/sqldb/migrations.go
package sqldb

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
//
// Foreign keys deliberately carry no ON DELETE CASCADE: deletion ordering is
// owned by the group-deletion coordinator in the groups store, which removes
// dependents in referential order inside one transaction. Keeping the cascade
// in exactly one place makes its ordering and atomicity testable.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	email           TEXT NOT NULL UNIQUE,
	hashed_password TEXT NOT NULL,
	name            TEXT NOT NULL,
	created_at      DATETIME NOT NULL,
	updated_at      DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS groups (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	invite_code TEXT NOT NULL UNIQUE,
	created_at  DATETIME NOT NULL,
	created_by  INTEGER REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS group_members (
	group_id  INTEGER NOT NULL REFERENCES groups(id),
	user_id   INTEGER NOT NULL REFERENCES users(id),
	role      TEXT NOT NULL DEFAULT 'member' CHECK(role IN ('admin', 'member')),
	joined_at DATETIME NOT NULL,
	PRIMARY KEY (group_id, user_id)
);

CREATE TABLE IF NOT EXISTS tasks (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	group_id   INTEGER NOT NULL REFERENCES groups(id),
	name       TEXT NOT NULL,
	emoji      TEXT,
	category   TEXT,
	created_at DATETIME NOT NULL,
	is_active  INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0, 1))
);

CREATE TABLE IF NOT EXISTS task_assignments (
	task_id     INTEGER NOT NULL REFERENCES tasks(id),
	user_id     INTEGER NOT NULL REFERENCES users(id),
	assigned_at DATETIME NOT NULL,
	PRIMARY KEY (task_id, user_id)
);

CREATE TABLE IF NOT EXISTS completions (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id      INTEGER NOT NULL REFERENCES tasks(id),
	user_id      INTEGER NOT NULL REFERENCES users(id),
	group_id     INTEGER NOT NULL REFERENCES groups(id),
	completed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_group_members_user_id ON group_members(user_id);
CREATE INDEX IF NOT EXISTS idx_tasks_group_id ON tasks(group_id);
CREATE INDEX IF NOT EXISTS idx_task_assignments_user_id ON task_assignments(user_id);
CREATE INDEX IF NOT EXISTS idx_completions_task_time ON completions(task_id, completed_at);
CREATE INDEX IF NOT EXISTS idx_completions_group_user_time ON completions(group_id, user_id, completed_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
