// Package depth lays out artworks as a 3D depth plot.
//
// # Overview
//
// Each artwork becomes a small translucent box. Its X position is a linear
// function of its year, centered on the middle of the time window; its Y
// position grows with its depth rank; every block sits on the Z = 0 plane.
// The block color comes from the style palette, keyed by the artwork's
// canonical style (the part of its style string before the first ", ").
//
// An axis bar spanning the whole time window, with one tick every
// [TickInterval] years, is placed at the origin.
//
// # Filtering
//
// Records outside [[GraphStartYear], [GraphEndYear]] (inclusive on both
// ends) or with a style missing from the palette produce no block. Neither
// case is an error; both are counted in [Stats].
//
// # Usage
//
//	sc := scene.New()
//	p, err := depth.New(sc, records)
//	if err != nil {
//	    return err // a malformed record (empty style, NaN range)
//	}
//
//	// Reverse lookup from a picked mesh back to its artwork.
//	if rec, ok := p.Lookup(mesh.ID()); ok {
//	    fmt.Println(rec.Title)
//	}
//
//	// Highlight it.
//	p.SetSelected(mesh, 0xffffff, true)
//
// A [Plot] is not safe for concurrent use; callers that share one across
// goroutines must serialize access.
package depth
