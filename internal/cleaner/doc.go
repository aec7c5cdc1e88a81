// Package cleaner removes dead content from YAML locale files.
//
// Clean runs the whole pipeline over a byte slice:
//
//  1. parse the YAML stream
//  2. index each document by key path (package shadow)
//  3. delete empty translations, empty groups and dangling aliases
//     (package prune)
//  4. normalize whitespace in the remaining translations (package normalize)
//  5. serialize without line wrapping
//
// Each document of a stream is cleaned on its own. Nothing is written unless
// every step succeeded; CleanFileInPlace replaces the file through a
// temporary file and a rename, so a failed write leaves the original intact.
package cleaner
