package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme prefix expected before the token.
const BearerScheme = "Bearer"

// RequestIDHeaderName is the HTTP header used to correlate a request across logs.
const RequestIDHeaderName = "X-Request-ID"
