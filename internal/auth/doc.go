// Package auth provides authentication and authorization for the
// content-management panel.
//
// Two authentication sources are supported:
//   - Local database authentication with Argon2id password hashing
//   - OpenID Connect (OIDC) authentication with external identity providers
//
// Authorization is deliberately simple: a user either has the admin flag
// and can manage content, or they cannot log in to anything useful. There
// is no role or group system because the panel has exactly one audience,
// the company's own marketing team.
//
// # Middleware
//
// Fiber middleware functions are provided for route protection:
//   - RequireAdmin: protect panel routes, requiring a valid session whose
//     user carries the admin flag
//
// Example usage:
//
//	authService := auth.NewService(db)
//
//	app.Get("/admin/settings",
//	    auth.RequireAdmin(authService),
//	    handler,
//	)
package auth
