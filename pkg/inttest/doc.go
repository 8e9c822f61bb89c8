// Package inttest enables writing of integration tests. It sets up the HTTP server of the views and
// a fake of the REST backend they talk to. Every setup function ensures resources are cleaned up
// after the tests are finished and returns a client ready to interact with the server.
package inttest
