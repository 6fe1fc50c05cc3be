package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS badges (
    account              TEXT NOT NULL,
    badge_id             TEXT NOT NULL,
    earned_at            TEXT NOT NULL,
    PRIMARY KEY (account, badge_id)
);

CREATE INDEX IF NOT EXISTS idx_badges_earned ON badges(earned_at);
`
