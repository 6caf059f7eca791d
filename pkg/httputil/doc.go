// Package httputil provides the HTTP plumbing shared by collabgraph's API
// handlers.
//
// # Responses
//
// [WriteJSON] encodes a value with the right content type and status.
// [WriteError] turns any error into a JSON body of the form
//
//	{"code": "USER_NOT_FOUND", "message": "user \"mallory\" is not in the graph"}
//
// using the code of a [errors.Error] when there is one and INTERNAL_ERROR
// otherwise. The HTTP status follows [errors.HTTPStatus].
//
// # Query Parameters
//
// [QueryInt] reads an optional integer parameter with a default.
//
// # Middleware
//
// [Instrument] reports every request to the observability HTTP hooks and
// logs it at debug level. Routes are reported by pattern, not by path, so
// metrics keep a bounded label set.
//
// [errors.Error]: github.com/matzehuels/collabgraph/pkg/errors.Error
// [errors.HTTPStatus]: github.com/matzehuels/collabgraph/pkg/errors.HTTPStatus
package httputil
