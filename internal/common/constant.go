package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the scheme prefix expected in the authorization header.
const BearerPrefix = "Bearer"
