// Package tor provides the proxy plumbing used when a URL check fetches the
// page behind the URL: a SOCKS5 client, an optional embedded Tor daemon for
// .onion hosts, and v3 onion address validation.
package tor
