package session

import "go.uber.org/zap"

// Provider exposes the on-disk session to the API client.
type Provider struct {
	Logger *zap.Logger
	// OnLogout clears state tied to the session, such as the current
	// conversation. It runs after the session is cleared.
	OnLogout func() error
}

// GetToken returns the current session token.
func (p Provider) GetToken() string {
	return GetToken()
}

// Logout clears the stored session and its associated state.
func (p Provider) Logout() {
	if err := Clear(); err != nil {
		p.warn("clear session", err)
	}
	if p.OnLogout != nil {
		if err := p.OnLogout(); err != nil {
			p.warn("clear session state", err)
		}
	}
}

func (p Provider) warn(msg string, err error) {
	if p.Logger != nil {
		p.Logger.Warn(msg, zap.Error(err))
	}
}
