package common

// AuthorizationHeaderName is the HTTP header and gRPC metadata key used to
// carry the bearer credential.
const AuthorizationHeaderName = "authorization"

// BearerPrefix is the optional scheme prefix in front of the token.
const BearerPrefix = "Bearer "
