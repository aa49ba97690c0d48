// Package web serves the browser UI.
//
// The page is rendered on the server with html/template. A small script
// submits checks to the JSON API and replaces the results panel with the
// HTML pushed over a websocket on every session transition, so the page
// works without a build step or external assets.
//
// Routes:
//
//	GET  /              full page
//	GET  /api/state     current state as JSON
//	POST /api/modality  switch tab (modality=text|image|url)
//	POST /api/check     submit; text and url as form fields, image as multipart
//	POST /api/reset     check another
//	POST /api/copy      copy the result summary to the clipboard
//	GET  /ws            state push
//	GET  /health        liveness
package web
