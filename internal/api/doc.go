// Package api provides an HTTP client for the rosterd users API.
//
// The package is split into two files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: data structures mirroring the users API schema
//
// # Client Usage
//
// Create a client using the API address from configuration:
//
//	client, err := api.NewClient("127.0.0.1:8321")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	users, err := client.ListUsers(ctx)
//	created, err := client.CreateUser(ctx, api.Draft{Name: "Ada", Email: "ada@x.com"})
//
// # Endpoints
//
// The client covers the five users routes:
//
//   - GET    /api/users        list the collection
//   - GET    /api/users/{id}   fetch one record
//   - POST   /api/users        create (server assigns the id)
//   - PUT    /api/users/{id}   full replacement of editable fields
//   - DELETE /api/users/{id}   remove a record (204, no payload)
//
// # Error Handling
//
// All requests use context for cancellation and carry a 5-second timeout.
// Transport failures and non-2xx statuses are returned as wrapped errors;
// a 404 additionally wraps ErrNotFound so callers can branch on it with
// errors.Is. Failure response bodies are never parsed.
//
// # Design Rationale
//
// The client is intentionally minimal: no caching, no retries, no local
// state. Cache consistency is the controller's job; the client does exactly
// one network request per call.
package api
