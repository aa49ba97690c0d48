// Package fetch retrieves a single page for URL checks and reduces it to a
// Snapshot: the handful of facts about the page that help the classifier
// judge a link (title, description, visible text, password forms, where
// forms and links point).
//
// Nothing is crawled. One GET is made, the body is read up to a size limit,
// and redirects are capped. Connections to .onion hosts go through a SOCKS5
// proxy or an embedded Tor daemon; clearnet hosts use the proxy when one is
// configured and a direct connection otherwise.
package fetch
