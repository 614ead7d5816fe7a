// Package auth provides password hashing, bearer tokens and the middleware
// that guards user-owned routes.
//
// # Configuration
//
//	AUTH_TOKEN_SECRET=<hex>   # HS256 signing secret, generated at boot if empty
//	AUTH_TOKEN_EXPIRY=30m     # Access token lifetime
//	AUTH_TOKEN_ISSUER=elibrary
//	AUTH_BCRYPT_COST=12       # bcrypt cost factor
//
// Tokens are stateless. There is no logout or refresh; expiry is the only
// bound on a token's lifetime.
//
// # Usage
//
//	tokens := auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenExpiry, cfg.Auth.TokenIssuer)
//	service := auth.NewService(users.NewRepository(db), tokens, cfg.Auth.BcryptCost, log)
//	protected := router.Group("/", auth.NewMiddleware(service, log).RequireUser())
//
// Read the caller in handlers:
//
//	user := auth.CurrentUser(c)
package auth
