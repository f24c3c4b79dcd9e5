// Package httpapi implements the storage gateway against the document
// REST API. It covers both backend variants: the blob storage API and
// the SharePoint proxy, which adds folder scoping and session auth on
// top of the same routes.
package httpapi
