package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs: one row per processing run
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    inputs TEXT NOT NULL,        -- JSON array of input paths
    cn_sites TEXT NOT NULL,      -- JSON array of CN website identifiers
    filter TEXT,
    rows_loaded INTEGER DEFAULT 0,
    rows_kept INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

-- Reviews: processed rows of a run, in dataset order
CREATE TABLE IF NOT EXISTS reviews (
    review_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    position INTEGER NOT NULL,

    website TEXT,
    review TEXT,
    cleaned_review TEXT,
    review_length INTEGER,
    rating_ratio REAL,
    like_ratio REAL,
    rating_level TEXT,
    like_level TEXT,
    language TEXT,

    -- Full row as JSON, including columns not listed above
    record TEXT NOT NULL,

    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_reviews_run ON reviews(run_id);
CREATE INDEX IF NOT EXISTS idx_reviews_website ON reviews(website);
CREATE INDEX IF NOT EXISTS idx_reviews_rating_level ON reviews(rating_level);
CREATE INDEX IF NOT EXISTS idx_reviews_like_level ON reviews(like_level);
`
