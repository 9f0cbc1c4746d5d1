// Command iconpress packages the vendor icon archive: it fetches and
// extracts the asset zip, merges the two category taxonomies into one tree,
// normalizes names and embedded titles, and renders a browsing page.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
