// Package pathutil locates the external tools notification deliveries run.
//
// Tools are looked up in PATH first and then in a short list of well known
// installation directories, so a tool can be found from a process started
// with a trimmed environment.
//
// # Example
//
//	shell := pathutil.FindTool("powershell", pathutil.SystemDirs()...)
//	if shell == "" {
//	    return fmt.Errorf("powershell not found. %s", pathutil.GetInstallSuggestion("powershell"))
//	}
//
// On Windows the .exe extension is appended to names that lack it.
package pathutil
