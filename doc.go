// Package mdslides splits an annotated markdown lecture source into two
// derived documents, presentation slides and full lecture notes, and renders
// each through an external engine.
//
// # Quick Start
//
// Split a source document without rendering:
//
//	svc := mdslides.New()
//	defer svc.Close()
//
//	res, err := svc.Split(mdslides.Input{Markdown: source})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("slides.md", []byte(res.Slides), 0644)
//	os.WriteFile("notes.md", []byte(res.Notes), 0644)
//
// Or build final outputs (reveal.js slides, HTML notes) in one call:
//
//	results, err := svc.Build(ctx, mdslides.Input{Markdown: source}, mdslides.Targets{
//	    Slides: []mdslides.Format{mdslides.FormatRevealJS},
//	    Notes:  []mdslides.Format{mdslides.FormatHTML},
//	    OutputDir: "out", BaseName: "lecture01",
//	})
//
// Build follows a partial-success policy: each requested format gets its own
// entry in results, and one failing format never discards the outputs that
// succeeded.
//
// # Directives
//
// Routing is driven by HTML comments in the source, each on its own line:
//
//	<!-- SLIDE -->       new slide, content goes to both streams
//	<!-- SLIDE-ONLY -->  content goes to the slides stream only
//	<!-- NOTES-ONLY -->  content goes to the notes stream only
//	<!-- NOTES -->       notes only, with a section boundary in the notes
//	<!-- ALL -->         resume routing to both streams
//
// Anything that is not an exact, case-sensitive match is ordinary content,
// so incidental HTML comments pass through untouched.
package mdslides
