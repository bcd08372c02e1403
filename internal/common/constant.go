package common

// SessionCookieName is the cookie carrying the signed session ID of one
// browser context.
const SessionCookieName = "nutriai_session"

// CodeQueryParam is the query parameter the identity provider uses to hand
// back the authorization code.
const CodeQueryParam = "code"
