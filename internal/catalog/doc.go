package catalog

// Package catalog is the durable local store for playlists, tracks and user
// settings, backed by SQLite. Every exported call is one atomic record
// operation; no transaction spans a whole download session.
