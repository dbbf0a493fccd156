package devserver

type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id            TEXT PRIMARY KEY,
	type          TEXT NOT NULL,
	department    TEXT NOT NULL DEFAULT '',
	title         TEXT NOT NULL,
	message       TEXT NOT NULL DEFAULT '',
	read          INTEGER NOT NULL DEFAULT 0,
	priority      TEXT NOT NULL DEFAULT '',
	created_at_ms INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at_ms DESC);
CREATE INDEX IF NOT EXISTS idx_notifications_department ON notifications(department);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
