// Package main provides the entry point for the scamcheck CLI.
//
// scamcheck asks a Gemini model whether a message, screenshot or web
// address looks like a scam and prints the verdict with its red flags and
// recommendations. It can also serve the same checks as a local web page.
//
// Usage:
//
//	scamcheck text "You won a prize, reply with your bank details"
//	scamcheck image screenshot.png
//	scamcheck url paypa1-login.com
//	scamcheck serve
//
// See --help for all available options.
package main

// main is the entry point for scamcheck.
func main() {
	Execute()
}
