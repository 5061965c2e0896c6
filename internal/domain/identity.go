package domain

// Identity is the verified caller supplied by the upstream authenticator.
// It is passed explicitly into every engine call; the service performs no
// credential verification itself.
type Identity struct {
	Email   string
	Lab     string
	IsAdmin bool
}
