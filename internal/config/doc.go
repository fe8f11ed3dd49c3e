package config

// Package config resolves process configuration (flags, environment, .env)
// and manages the user settings record persisted in the catalog.
