// Package io reads and writes artwork record files.
//
// # Formats
//
// Records are stored as JSON or YAML. Both accept either a bare list or an
// object with an "artworks" key:
//
//	{
//	  "artworks": [
//	    {"title": "The Night Watch", "year": 1642, "style": "Dutch Golden Age, Painting", "range": 2},
//	    {"title": "The Starry Night", "year": 1889, "style": "Post-Impressionism", "range": 1}
//	  ]
//	}
//
// Only year, style and range drive the layout. id, title, artist and image
// are optional and carried through to exports and lookups.
//
// # Import
//
// Use [ImportFile] to read a file by path; the decoder is picked from its
// extension (.json, .yaml, .yml). [ReadJSON] and [ReadYAML] read from any
// io.Reader:
//
//	records, err := io.ImportFile("artworks.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding failures, such as a year that is not an integer, are reported as
// errors.ErrCodeInvalidInput wrapped with the path. Semantic validation (an
// empty style, a NaN range) happens when the plot is built.
//
// # Export
//
// [WriteJSON], [WriteYAML] and [ExportFile] write the object form, which
// round-trips through the readers.
package io
