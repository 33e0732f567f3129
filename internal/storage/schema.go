package storage

const schema = `
-- The 'users' table holds the accounts the dashboard is scoped to.
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at DATETIME NOT NULL
);

-- The 'sessions' table is the append-only study log. 'date' is the calendar
-- day in YYYY-MM-DD form; 'fingerprint' is set for journal-imported rows so
-- re-imports can recognize them.
CREATE TABLE IF NOT EXISTS sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    subject TEXT NOT NULL,
    chapter TEXT NOT NULL,
    difficulty INTEGER NOT NULL,
    date TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    fingerprint TEXT,

    FOREIGN KEY(user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Per-user key/value settings, currently just the exam date.
CREATE TABLE IF NOT EXISTS settings (
    user_id TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,

    PRIMARY KEY (user_id, key)
);

-- The 'journal_sources' table tracks where bulk imports come from, either a
-- local directory or a git repository of journal files.
CREATE TABLE IF NOT EXISTS journal_sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    path TEXT NOT NULL,
    type TEXT NOT NULL, -- 'local' or 'git'
    last_scanned DATETIME,

    UNIQUE(user_id, path)
);
`
