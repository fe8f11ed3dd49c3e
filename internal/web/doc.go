package web

// Package web is the presentation-layer boundary: a REST API over the
// catalog and download service plus a websocket channel that streams typed
// download events to the front-end.
