// Package youtube looks up trailers and videos through the YouTube Data
// API v3 search endpoint.
package youtube
