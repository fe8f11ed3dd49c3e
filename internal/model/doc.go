package model

// Package model defines domain data structures used across the app: playlist
// sessions, per-track download state, and the user settings record.
// Structures are designed for direct JSON exposure to the front-end and
// explicit state transitions.
