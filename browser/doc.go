// Package browser opens the launch URL of an activated notification in the
// user's web browser.
//
// Launching is delegated to github.com/pkg/browser. Only http and https URLs
// are opened, so a launch argument can never start a local program:
//
//	err := browser.Launch(ctx, browser.LaunchOptions{
//	    URL:    doc.Launch(),
//	    Target: browser.TargetDefault,
//	})
//
// TargetNone validates the URL but opens nothing.
package browser
