package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	dataset TEXT NOT NULL,
	policy TEXT NOT NULL,
	start_time DATETIME NOT NULL,
	end_time DATETIME NOT NULL,
	episodes INTEGER NOT NULL,
	steps INTEGER NOT NULL,
	initial_balance REAL NOT NULL,
	final_balance REAL NOT NULL,
	net_pl REAL NOT NULL,
	return_pct REAL NOT NULL,
	config BLOB,
	org_path TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS steps (
	run_id TEXT NOT NULL,
	episode INTEGER NOT NULL,
	step INTEGER NOT NULL,
	time DATETIME NOT NULL,
	action TEXT NOT NULL,
	price REAL NOT NULL,
	balance REAL NOT NULL,
	shares_held REAL NOT NULL,
	reward REAL NOT NULL,
	done INTEGER NOT NULL,
	PRIMARY KEY (run_id, episode, step)
);

CREATE TABLE IF NOT EXISTS features (
	dataset TEXT NOT NULL,
	row INTEGER NOT NULL,
	time DATETIME NOT NULL,
	close REAL NOT NULL,
	positive_volatility REAL,
	upper_signal REAL,
	volume_gauge REAL,
	volume_color TEXT NOT NULL,
	momentum REAL,
	mom_oversold REAL NOT NULL,
	mom_overbought REAL NOT NULL,
	PRIMARY KEY (dataset, row)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created);
`
