// Package web embeds the HTML templates and static assets of the server.
package web

import "embed"

//go:embed templates/*.html static/*
var Files embed.FS
