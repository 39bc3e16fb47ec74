package model

import "errors"

// Install input validation errors. Both are caught before any network
// call is made; the host is never contacted with invalid input.
var (
	ErrNoInstallSource    = errors.New("provide a repository URL or an archive file")
	ErrBothInstallSources = errors.New("provide either a repository URL or an archive file, not both")
)

// ValidateInstallInput enforces that exactly one install source is given.
func ValidateInstallInput(repoURL, archivePath string) error {
	hasURL := repoURL != ""
	hasArchive := archivePath != ""

	switch {
	case !hasURL && !hasArchive:
		return ErrNoInstallSource
	case hasURL && hasArchive:
		return ErrBothInstallSources
	}
	return nil
}
