// Package models contains domain types for the document Q&A service.
package models

// Document represents a processed upload and the text extracted from it.
type Document struct {
	ID      string `json:"id" msgpack:"id"`
	Name    string `json:"name" msgpack:"name"`
	Size    int64  `json:"size" msgpack:"size"`
	Type    string `json:"type" msgpack:"type"`
	Content string `json:"content,omitempty" msgpack:"content,omitempty"`
}
