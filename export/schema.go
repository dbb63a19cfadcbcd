package export

// DDL statements shared by the sqlite and postgres targets. Ids are plain
// integers assigned by the exporter (1-based, matching row order) rather than
// autoincrement columns, so the exported tables replay the simulation's
// creation order exactly.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		run_id     TEXT PRIMARY KEY,
		created_at TIMESTAMP NOT NULL,
		seed       BIGINT NOT NULL,
		n_books    INTEGER NOT NULL,
		n_users    INTEGER NOT NULL,
		num_days   INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		category_id   INTEGER PRIMARY KEY,
		category_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS libraries (
		library_id   INTEGER PRIMARY KEY,
		library_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		book_id        INTEGER PRIMARY KEY,
		title          TEXT NOT NULL,
		author         TEXT NOT NULL,
		category_id    INTEGER NOT NULL REFERENCES categories (category_id),
		library_id     INTEGER NOT NULL REFERENCES libraries (library_id),
		total_quantity INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id   INTEGER PRIMARY KEY,
		user_name TEXT NOT NULL,
		email     TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS queues (
		queue_id    INTEGER PRIMARY KEY,
		user_id     INTEGER NOT NULL REFERENCES users (user_id),
		book_id     INTEGER NOT NULL REFERENCES books (book_id),
		queue_start TIMESTAMP NOT NULL,
		queue_end   TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		loan_id    INTEGER PRIMARY KEY,
		user_id    INTEGER NOT NULL REFERENCES users (user_id),
		book_id    INTEGER NOT NULL REFERENCES books (book_id),
		queue_id   INTEGER REFERENCES queues (queue_id),
		loan_start TIMESTAMP NOT NULL,
		loan_end   TIMESTAMP
	)`,
}
