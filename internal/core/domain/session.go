package domain

// Session is the authenticated scope of a run: a short-lived bearer token
// and the account every subsequent call is made under. Created once by the
// credential and account resolvers and immutable afterwards.
//
// The token is not refreshed on expiry; a poll outliving the token is a
// known limitation.
type Session struct {
	AccessToken string
	AccountID   int64
	APIHost     string
}
