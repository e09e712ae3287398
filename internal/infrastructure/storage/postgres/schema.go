package postgres

import "stockledger/internal/domain/ledger"

// Table names per collection.
var tableNames = map[ledger.Kind]string{
	ledger.KindProduct: "products",
	ledger.KindOpening: "opening_stock",
	ledger.KindInward:  "inward_stock",
	ledger.KindOutward: "outward_stock",
}

// Every table carries a seq column so reads come back in insertion order.
// There are no foreign keys: movements may reference unknown products.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		seq          BIGSERIAL PRIMARY KEY,
		id           TEXT NOT NULL,
		product_name TEXT NOT NULL,
		product_code TEXT NOT NULL,
		unit         TEXT NOT NULL DEFAULT 'nos',
		created_date TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS opening_stock (
		seq          BIGSERIAL PRIMARY KEY,
		id           TEXT NOT NULL,
		product_id   TEXT NOT NULL,
		quantity     NUMERIC NOT NULL,
		rate         NUMERIC NOT NULL,
		amount       NUMERIC NOT NULL,
		date         TEXT NOT NULL,
		created_date TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS inward_stock (
		seq          BIGSERIAL PRIMARY KEY,
		id           TEXT NOT NULL,
		product_id   TEXT NOT NULL,
		quantity     NUMERIC NOT NULL,
		rate         NUMERIC NOT NULL,
		amount       NUMERIC NOT NULL,
		date         TEXT NOT NULL,
		supplier     TEXT NOT NULL DEFAULT '',
		remarks      TEXT NOT NULL DEFAULT '',
		created_date TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS outward_stock (
		seq          BIGSERIAL PRIMARY KEY,
		id           TEXT NOT NULL,
		product_id   TEXT NOT NULL,
		quantity     NUMERIC NOT NULL,
		rate         NUMERIC NOT NULL,
		amount       NUMERIC NOT NULL,
		date         TEXT NOT NULL,
		customer     TEXT NOT NULL DEFAULT '',
		remarks      TEXT NOT NULL DEFAULT '',
		created_date TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_opening_stock_product ON opening_stock (product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_inward_stock_product ON inward_stock (product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_outward_stock_product ON outward_stock (product_id)`,
}

// Column lists follow the db tags of the ledger records.
var columns = map[ledger.Kind][]string{
	ledger.KindProduct: ExtractDBColumns[ledger.Product](),
	ledger.KindOpening: ExtractDBColumns[ledger.OpeningStockEntry](),
	ledger.KindInward:  ExtractDBColumns[ledger.InwardStockEntry](),
	ledger.KindOutward: ExtractDBColumns[ledger.OutwardStockEntry](),
}
