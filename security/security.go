// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

var (
	// ErrInvalidPath indicates a path contains invalid characters or patterns.
	ErrInvalidPath = errors.New("invalid path")
	// ErrPathTraversal indicates a path traversal attack attempt.
	ErrPathTraversal = errors.New("path traversal detected")
	// ErrInvalidAppID indicates an application identifier that cannot be used.
	ErrInvalidAppID = errors.New("invalid application id")
	// ErrInsecureFilePermissions indicates a file has insecure (world-writable) permissions.
	ErrInsecureFilePermissions = errors.New("insecure file permissions")

	// appIDPattern matches an alphanumeric start followed by alphanumerics,
	// underscores, hyphens, dots or spaces. Max 128 characters.
	appIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._ -]{0,127}$`)
)

// ValidatePath checks that a path from an untrusted caller is safe to open.
// It rejects parent directory references before and after symbolic links
// are resolved. The path does not need to exist.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("%w: path contains a NUL byte", ErrInvalidPath)
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("%w: path contains parent directory reference", ErrPathTraversal)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path: %w", ErrInvalidPath, err)
	}
	cleanPath := filepath.Clean(absPath)

	resolvedPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("%w: cannot resolve symbolic links: %w", ErrInvalidPath, err)
		}
		resolvedPath = cleanPath
	}

	if strings.Contains(resolvedPath, "..") {
		return fmt.Errorf("%w: resolved path contains parent directory reference", ErrPathTraversal)
	}

	return nil
}

// ValidateAppID checks an application identifier. Identifiers must:
// - Start with an alphanumeric character
// - Contain only alphanumeric characters, underscores, hyphens, dots or spaces
// - Be at most 128 characters
func ValidateAppID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: application id cannot be empty", ErrInvalidAppID)
	}
	if len(id) > 128 {
		return fmt.Errorf("%w: exceeds maximum length of 128 characters", ErrInvalidAppID)
	}
	if !appIDPattern.MatchString(id) {
		return fmt.Errorf("%w: must start with alphanumeric and contain only alphanumeric, underscore, hyphen, dot or space", ErrInvalidAppID)
	}
	return nil
}

// ValidateFilePermissions checks if a file has secure permissions.
// On Unix systems, it ensures the file is not world-writable.
// On Windows, this check is skipped as Windows uses ACLs differently.
func ValidateFilePermissions(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	if info.Mode().Perm()&0o022 != 0 {
		return ErrInsecureFilePermissions
	}

	return nil
}
