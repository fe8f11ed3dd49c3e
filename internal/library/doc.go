package library

// Package library watches the download directory and reconciles the catalog
// when downloaded files are removed outside the app.
