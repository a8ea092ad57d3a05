// Package fileutil provides the file operations the notifier needs for
// exported and imported notification documents.
//
// Writes are atomic: data goes to a temporary file in the destination
// directory which is then renamed over the target, so a reader never sees
// a partially written document.
//
// # Example
//
//	if err := fileutil.AtomicWriteFile("build.xml", doc, fileutil.FilePermission); err != nil {
//	    return err
//	}
//	data, err := fileutil.ReadFileLimit("build.xml", fileutil.MaxDocumentSize)
package fileutil
