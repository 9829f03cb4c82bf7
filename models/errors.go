package models

// Error taxonomy for the persistence core. Not-found is deliberately absent:
// a missing article is signaled by a nil result or a false affected flag,
// never by an error.

// ErrorValidation means the caller supplied malformed or missing input.
type ErrorValidation struct {
	Message string
}

func (e ErrorValidation) Error() string {
	return e.Message
}

// ErrorTransient covers deadlocks, serialization failures and other store
// conditions where retrying the whole operation may succeed. The core never
// retries internally.
type ErrorTransient struct {
	Message string
}

func (e ErrorTransient) Error() string {
	return e.Message
}

// ErrorIntegrity is an unexpected constraint failure, e.g. a foreign key
// violation the resolver did not account for.
type ErrorIntegrity struct {
	Message string
}

func (e ErrorIntegrity) Error() string {
	return e.Message
}

// ErrorInternalServer is everything else after the unit of work rolled back.
type ErrorInternalServer struct {
	Message string
}

func (e ErrorInternalServer) Error() string {
	return e.Message
}
