// Package mcptool exposes the notifier as Model Context Protocol tools
// served over stdio.
//
// Tools:
//   - show_notification builds a notification, shows it and returns the
//     outcome as JSON
//   - render_notification builds a notification and returns its XML
//   - list_templates returns the template catalog
//
// Validation and delivery failures are returned as tool error results so
// the client can show them to the model; only protocol problems surface as
// Go errors.
package mcptool
