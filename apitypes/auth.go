package apitypes

// TokenPair is the credential set issued by the auth endpoints: a short-lived
// bearer access token plus the refresh token used to renew it.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest is the payload of the token refresh endpoint.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
