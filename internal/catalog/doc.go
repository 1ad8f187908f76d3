// Package catalog owns the read-only feed catalog and its companion
// encoder/decoder parameter records.
//
// A Store is loaded once at startup from a data directory (CSV or SQLite feed
// table, declared table schema, parameter JSON files) and is immutable
// afterwards, so concurrent readers need no locking. Load enforces the only
// hard structural invariant, unique non-empty feed IDs; every other malformed
// value degrades silently to "missing" rather than failing the load.
package catalog
