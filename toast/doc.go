// Package toast builds toast notification documents.
//
// A document is produced in three steps:
//
//   - a Template is chosen from the static catalog, either by name
//     (SelectTemplate) or by the shape of the input (InferTemplate)
//   - a Builder fills the template's text slots, image, duration and sound
//   - Build renders the immutable Document once; the builder is frozen afterwards
//
// NewBuilderFromRequest runs all three steps for a declarative Request, which
// is what the command line and the MCP server use:
//
//	b, err := toast.NewBuilderFromRequest(toast.Request{
//	    Lines: []string{"Hello", "World"},
//	    Sound: "Call;3",
//	})
//	if err != nil {
//	    return err
//	}
//	doc := b.Build()
//	xml, _ := doc.XML()
//
// Sound specifications use the grammar NAME[;VARIANT], for example "Mail",
// "Alarm;4" or "off". See ParseSound.
package toast
