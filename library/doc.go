// Package library persists the viewer's local state: the watchlist, the
// profile roster with the selected profile, and liked titles. Values are
// JSON documents in a single SQLite key-value table.
package library
