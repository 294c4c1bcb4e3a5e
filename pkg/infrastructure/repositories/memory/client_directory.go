package memory

import (
	"strings"

	"github.com/vsinha/reqrecon/pkg/domain/entities"
	"github.com/vsinha/reqrecon/pkg/domain/repositories"
)

// ClientDirectory is an immutable in-memory client reference. It is built
// once and only read afterwards, so concurrent lookups need no locking.
type ClientDirectory struct {
	clients     []entities.ClientMapping
	byShortCode map[string]int
	byAccount   map[string]int
}

// NewClientDirectory builds a directory from clients. When clients is empty
// the defaults are used instead, so the directory is never empty unless both are.
func NewClientDirectory(clients []entities.ClientMapping, defaults []entities.ClientMapping) *ClientDirectory {
	if len(clients) == 0 {
		clients = defaults
	}

	d := &ClientDirectory{
		clients:     make([]entities.ClientMapping, 0, len(clients)),
		byShortCode: make(map[string]int, len(clients)),
		byAccount:   make(map[string]int, len(clients)),
	}
	for _, c := range clients {
		if idx, exists := d.byShortCode[c.ShortCode]; exists {
			if d.byAccount[d.clients[idx].AccountCode] == idx {
				delete(d.byAccount, d.clients[idx].AccountCode)
			}
			d.clients[idx] = c
			if _, taken := d.byAccount[c.AccountCode]; !taken {
				d.byAccount[c.AccountCode] = idx
			}
			continue
		}
		d.byShortCode[c.ShortCode] = len(d.clients)
		if _, exists := d.byAccount[c.AccountCode]; !exists {
			d.byAccount[c.AccountCode] = len(d.clients)
		}
		d.clients = append(d.clients, c)
	}
	return d
}

// Verify interface compliance
var _ repositories.ClientDirectory = (*ClientDirectory)(nil)

// LookupByShortCode returns the client with the given short-code
func (d *ClientDirectory) LookupByShortCode(shortCode string) (*entities.ClientMapping, bool) {
	idx, exists := d.byShortCode[shortCode]
	if !exists {
		return nil, false
	}
	c := d.clients[idx]
	return &c, true
}

// LookupByAccountCode returns the client with the given account code
func (d *ClientDirectory) LookupByAccountCode(accountCode string) (*entities.ClientMapping, bool) {
	idx, exists := d.byAccount[accountCode]
	if !exists {
		return nil, false
	}
	c := d.clients[idx]
	return &c, true
}

// LookupByNamePart returns the first client whose name contains text, ignoring case
func (d *ClientDirectory) LookupByNamePart(text string) (*entities.ClientMapping, bool) {
	needle := strings.ToLower(text)
	for _, c := range d.clients {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			found := c
			return &found, true
		}
	}
	return nil, false
}

// ResolveDepartment maps a storage class to its department label
func (d *ClientDirectory) ResolveDepartment(storageClass string) string {
	return entities.ResolveDepartment(storageClass)
}

// NameFor returns the full name of a client, or the short-code when the client
// is unknown or has no name
func (d *ClientDirectory) NameFor(shortCode string) string {
	if c, ok := d.LookupByShortCode(shortCode); ok && c.Name != "" {
		return c.Name
	}
	return shortCode
}

// AccountCodeFor returns the account code of a client, or the synthetic code
// when the client is unknown or has no account code
func (d *ClientDirectory) AccountCodeFor(shortCode string) string {
	if c, ok := d.LookupByShortCode(shortCode); ok && c.AccountCode != "" {
		return c.AccountCode
	}
	return entities.SyntheticAccountCode(shortCode)
}

// All returns the clients in load order
func (d *ClientDirectory) All() []entities.ClientMapping {
	out := make([]entities.ClientMapping, len(d.clients))
	copy(out, d.clients)
	return out
}

// Len returns the number of clients
func (d *ClientDirectory) Len() int {
	return len(d.clients)
}
