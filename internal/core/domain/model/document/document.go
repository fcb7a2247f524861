// Package document contains the Document entity owned by a load. Storage of
// the document content itself is a collaborator concern; this entity only
// tracks the compliance lock that makes delivered paperwork write-once.
package document

import (
	"errors"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/pkg/errs"
)

// ErrDocumentIsNotConstructed is returned when a Document was not created via
// a constructor.
var ErrDocumentIsNotConstructed = errors.New("Document must be created via NewDocument or RestoreDocument constructor")

// Document is a chain-of-custody artifact attached to a load. Once its load
// is delivered the document is locked permanently; there is no unlock path.
type Document struct {
	id       kernel.UUID
	loadID   kernel.UUID
	name     string
	isLocked bool
	lockedAt *time.Time

	isConstructed bool
}

// NewDocument creates an unlocked document attached to a load.
func NewDocument(id, loadID kernel.UUID, name string) (*Document, error) {
	if err := errors.Join(id.Validate(), loadID.Validate()); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("document name")
	}

	return &Document{
		id:            id,
		loadID:        loadID,
		name:          name,
		isConstructed: true,
	}, nil
}

// RestoreDocument reconstructs a persisted document including its lock state.
func RestoreDocument(id, loadID kernel.UUID, name string, isLocked bool, lockedAt *time.Time) (*Document, error) {
	doc, err := NewDocument(id, loadID, name)
	if err != nil {
		return nil, err
	}
	if isLocked && lockedAt == nil {
		return nil, errs.NewValueIsRequiredError("lockedAt")
	}

	doc.isLocked = isLocked
	doc.lockedAt = lockedAt
	return doc, nil
}

// Validate ensures the document was created through a constructor.
func (d *Document) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDocumentIsNotConstructed
	}
	return nil
}

// ID returns the document identifier.
func (d *Document) ID() kernel.UUID { return d.id }

// LoadID returns the owning load.
func (d *Document) LoadID() kernel.UUID { return d.loadID }

// Name returns the document name.
func (d *Document) Name() string { return d.name }

// IsLocked reports whether the document is locked.
func (d *Document) IsLocked() bool { return d.isLocked }

// LockedAt returns when the lock was applied, or nil while unlocked.
func (d *Document) LockedAt() *time.Time { return d.lockedAt }

// Lock locks the document at the given instant. Locking an already locked
// document is a no-op that preserves the original lock time.
func (d *Document) Lock(at time.Time) {
	if d.isLocked {
		return
	}
	d.isLocked = true
	d.lockedAt = &at
}
