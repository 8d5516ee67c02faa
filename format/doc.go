// Package format recognizes the supported file kinds and ties a parsed
// item.Context to the file it came from.
package format
