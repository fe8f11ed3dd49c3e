package platform

// Package platform contains host-facing helpers: directory preparation,
// default download locations, and YouTube URL validation.
