package domain

// Subaccount is a child account under the primary reseller account. The API
// is the source of truth; this tool never writes accounts.
type Subaccount struct {
	Name string
	ID   string
}

// Zone is a DNS zone owned by a subaccount.
type Zone struct {
	Name      string
	AccountID string
}
