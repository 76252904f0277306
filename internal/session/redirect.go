package session

// LoginRedirect decides where an already-authenticated visitor of an
// unauthenticated page (login, registration) should be sent. It never
// fires while the bootstrap is loading, and an authenticated session
// whose role resolved to unknown stays put — redirecting it to login
// would loop forever.
func LoginRedirect(state AuthState) (target string, ok bool) {
	if state.Loading {
		return "", false
	}
	if state.Session == nil {
		return "", false
	}
	if !state.Role.Known() {
		return "", false
	}
	return RoleHome(state.Role), true
}
