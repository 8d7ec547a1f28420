package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS providers (
    id                   INTEGER PRIMARY KEY,
    name                 TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS models (
    id                      INTEGER PRIMARY KEY,
    provider_id             INTEGER NOT NULL REFERENCES providers(id) ON DELETE CASCADE,
    name                    TEXT NOT NULL,
    category                TEXT NOT NULL,
    input_price             REAL NOT NULL,
    output_price            REAL NOT NULL,
    cache_write_price       REAL,
    cache_read_price        REAL,
    max_context_length      INTEGER,
    is_legacy               INTEGER NOT NULL DEFAULT 0,
    long_context_surcharge  INTEGER
);

CREATE TABLE IF NOT EXISTS embedding_models (
    id                   INTEGER PRIMARY KEY,
    provider_id          INTEGER NOT NULL REFERENCES providers(id) ON DELETE CASCADE,
    name                 TEXT NOT NULL,
    input_price          REAL NOT NULL,
    dimensions           INTEGER,
    pricing_tier         TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS web_search_tools (
    id                       INTEGER PRIMARY KEY,
    provider_id              INTEGER NOT NULL REFERENCES providers(id) ON DELETE CASCADE,
    name                     TEXT NOT NULL,
    price_per_k_calls        REAL NOT NULL,
    additional_pricing_notes TEXT
);

CREATE TABLE IF NOT EXISTS comparisons (
    id                   TEXT PRIMARY KEY,
    label                TEXT NOT NULL UNIQUE,
    created_at           TEXT NOT NULL,
    result_json          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comparisons_created ON comparisons(created_at);
`
