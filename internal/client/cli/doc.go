// Package cli provides the shopkeeper command-line client.
//
// Each invocation runs one command against the HTTP API:
//
//	client [-a url] [-token tok] register|login|products|product <id>|health
//
// register and login prompt for the username on stdin and read the password
// from the terminal without echo. login prints the bearer token; product
// commands take it from -token or SHOP_TOKEN.
package cli
