// Package main provides the CLI entrypoint for translations-manager.
//
// translations-manager cleans YAML locale files:
//   - removes keys whose translation is empty
//   - removes groups left without translations
//   - removes aliases to anchors that were removed
//   - normalizes indentation and blank lines inside translations
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
