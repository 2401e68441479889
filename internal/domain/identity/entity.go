package identity

// Identity is an account record resolved by the auth collaborator. The core
// never sees credentials, only the resolved identity.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
