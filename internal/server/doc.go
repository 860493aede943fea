// Package server serves the pre-rendered page, its stylesheet and the
// bundled favicon and script over HTTP.
//
// Every response body is computed before the listener opens. Handlers only
// read immutable byte slices; the one piece of mutable state is the
// Lifecycle terminating flag consulted by the health endpoint.
package server
