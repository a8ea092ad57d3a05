// Package security validates input that crosses a trust boundary before it
// reaches the file system or a child process.
//
// # Key Features
//
//   - Path validation (rejects parent directory references and NUL bytes)
//   - Application identifier validation (ids are embedded in delivery scripts)
//   - File permission validation (detects world-writable config files)
//
// # Example
//
//	if err := security.ValidateAppID(appID); err != nil {
//	    return err
//	}
//	if err := security.ValidatePath(imagePath); err != nil {
//	    return fmt.Errorf("image rejected: %w", err)
//	}
//
// Errors wrap the package sentinels and can be checked with errors.Is.
package security
