package repositories

import "github.com/vsinha/reqrecon/pkg/domain/entities"

// ClientDirectory is the read-only client reference loaded once at start-up.
// Implementations must be safe for concurrent reads.
type ClientDirectory interface {
	LookupByShortCode(shortCode string) (*entities.ClientMapping, bool)
	LookupByAccountCode(accountCode string) (*entities.ClientMapping, bool)
	// LookupByNamePart returns the first client whose name contains text, ignoring case
	LookupByNamePart(text string) (*entities.ClientMapping, bool)
	ResolveDepartment(storageClass string) string
	// NameFor and AccountCodeFor fall back to the short-code and the
	// synthetic account code for unknown clients
	NameFor(shortCode string) string
	AccountCodeFor(shortCode string) string
	All() []entities.ClientMapping
	Len() int
}
