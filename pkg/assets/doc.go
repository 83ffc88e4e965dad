// Package assets retrieves the single-page application's static files from
// disk. It is a collaborator of the wire layer: the server asks for a file by
// name and gets back bytes plus a content type, or ErrNotFound.
//
// Requested names are sanitized before touching the filesystem so a request
// can never escape the configured asset directory.
package assets
