// Package toastconfig loads the options of a notification run.
//
// Options are merged from, lowest to highest priority: built-in defaults,
// a JSON config file, TOAST_* environment variables, and command line
// flags the user set explicitly. Keys use underscores; the flag
// --text-lines, the env var TOAST_TEXT_LINES and the JSON key "text_lines"
// all set the same option.
//
//	opts, err := toastconfig.Load(configPath, toastconfig.FlagOverrides(cmd.Flags()))
//	if err != nil {
//	    return err
//	}
//	b, err := toast.NewBuilderFromRequest(opts.Request())
package toastconfig
