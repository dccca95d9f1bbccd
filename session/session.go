package session

// Session is the explicit session context injected into network-calling
// components. It reads through to the store on every call so that a
// login or logout is visible immediately, without ambient global state.
type Session struct {
	store *Store
}

// NewSession wraps a store in a session context.
func NewSession(store *Store) *Session {
	return &Session{store: store}
}

// Token returns the bearer token, with ok false when logged out.
func (s *Session) Token() (string, bool) {
	tok, ok, err := s.store.Get(KeyJWT)
	if err != nil || !ok || tok == "" {
		return "", false
	}
	return tok, true
}

// UserID returns the stored user identifier, if any.
func (s *Session) UserID() (string, bool) {
	id, ok, err := s.store.Get(KeyUserID)
	if err != nil || !ok || id == "" {
		return "", false
	}
	return id, true
}

// LoggedIn reports whether both the token and the user id are present.
func (s *Session) LoggedIn() bool {
	_, hasTok := s.Token()
	_, hasID := s.UserID()
	return hasTok && hasID
}

// Save stores the credentials of a fresh login or signup.
func (s *Session) Save(token, userID string) error {
	if err := s.store.Set(KeyJWT, token); err != nil {
		return err
	}
	return s.store.Set(KeyUserID, userID)
}

// Clear logs out by removing both keys.
func (s *Session) Clear() error {
	if err := s.store.Delete(KeyJWT); err != nil {
		return err
	}
	return s.store.Delete(KeyUserID)
}
