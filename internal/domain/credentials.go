package domain

// Credentials carries exactly one authentication form for a run: either a
// username/password pair for the password-grant exchange, or a pre-obtained
// bearer token. Held in memory only.
type Credentials struct {
	Username string
	Password string
	Token    string
}

// Session is the bearer token attached to every API request. There is no
// refresh: a session that expires mid-run fails the run.
type Session string

func (c Credentials) HasToken() bool {
	return c.Token != ""
}

func (c Credentials) HasPair() bool {
	return c.Username != "" || c.Password != ""
}

// Validate rejects contradictory or incomplete credential forms. It never
// touches the network.
func (c Credentials) Validate() error {
	if c.HasToken() && c.HasPair() {
		return &ConfigError{Reason: "--token is mutually exclusive with --username/--password"}
	}
	if c.HasToken() {
		return nil
	}
	if c.Username == "" || c.Password == "" {
		return &ConfigError{Reason: "either --token or both --username and --password are required"}
	}
	return nil
}
