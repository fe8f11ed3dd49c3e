package download

// Package download implements the core download pipeline around the external
// downloader executable: process supervision, the typed event envelope parsed
// at the process boundary, and the session reconciler that folds events into
// in-memory playlist state and catalog writes.
