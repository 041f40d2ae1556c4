// Package permissions holds the request authorization predicates shared by
// the resource endpoints. A predicate only answers allow or deny; choosing
// between 401 and 403 for a denial is left to the HTTP layer.
package permissions

import "net/http"

// Caller is the authentication state of the client making a request.
type Caller struct {
	Authenticated bool
	Admin         bool
}

// Anonymous is a caller that presented no credentials.
func Anonymous() Caller {
	return Caller{}
}

// Policy decides whether caller may issue a request with the given method.
type Policy func(method string, caller Caller) bool

// IsSafeMethod reports whether method is read-only.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AdminOrReadOnly lets anyone read and only authenticated admins write.
func AdminOrReadOnly(method string, caller Caller) bool {
	if IsSafeMethod(method) {
		return true
	}
	return caller.Authenticated && caller.Admin
}

// AdminOnly requires an authenticated admin for every method.
func AdminOnly(_ string, caller Caller) bool {
	return caller.Authenticated && caller.Admin
}

// Authenticated requires any authenticated caller.
func Authenticated(_ string, caller Caller) bool {
	return caller.Authenticated
}
