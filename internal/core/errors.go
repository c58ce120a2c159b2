package core

import "errors"

var (
	// ErrAlreadyGenerated is returned when journal entries already exist for
	// a document and generation is attempted again.
	ErrAlreadyGenerated = errors.New("journal entries already generated for document")

	// ErrDocumentHasEntries is returned when an operation would mutate a
	// document that journal entries have already been derived from.
	ErrDocumentHasEntries = errors.New("document already has journal entries")

	// ErrDocumentNotFound is returned when a document id does not exist
	// within the caller's tenant.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrEntryNotFound is returned when a journal entry id does not exist
	// within the caller's tenant.
	ErrEntryNotFound = errors.New("journal entry not found")

	// ErrInvalidCredentials is returned on a failed login attempt. It covers
	// unknown users, wrong passwords, and deactivated accounts alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
