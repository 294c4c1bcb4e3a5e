package entities

// ClientMapping links a client short-code to its full name and account code
type ClientMapping struct {
	ShortCode   string `json:"sigla"`
	Name        string `json:"nome"`
	AccountCode string `json:"codigo"`
}

// SyntheticAccountCode derives the account code used when the reference
// tables do not resolve one
func SyntheticAccountCode(shortCode string) string {
	return "C" + shortCode
}

// DefaultClients is the built-in client set used when the reference tables
// cannot be loaded
func DefaultClients() []ClientMapping {
	return []ClientMapping{
		{ShortCode: "EK", Name: "Emirates Airlines", AccountCode: "C000011"},
		{ShortCode: "TP", Name: "TAP Air Portugal", AccountCode: "C000020"},
		{ShortCode: "DL", Name: "Delta Airlines", AccountCode: "C000010"},
		{ShortCode: "KE", Name: "Korean Air", AccountCode: "C000021"},
		{ShortCode: "S4", Name: "SATA", AccountCode: "C000022"},
		{ShortCode: "DT", Name: "TAAG", AccountCode: "C000023"},
	}
}
