package domain

// Session holds the bearer tokens returned by the login endpoint. The refresh
// token is stored but never used by the client; an expired access token only
// shows up as a rejected request.
type Session struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh,omitempty"`
}
