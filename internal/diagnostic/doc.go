// Package diagnostic records what a clean operation did to a locale file.
//
// Every deleted key and every rewritten translation becomes an info
// diagnostic carrying a stable code and the dotted key path, so callers can
// summarize or print the changes. Structural oddities that do not stop
// cleaning (duplicate keys) are warnings; failures are errors.
//
// Codes:
//   - empty_value: a key whose translation is the empty string
//   - empty_group: a key whose group has no surviving keys
//   - dangling_alias: a reference to an anchor that no longer exists
//   - normalized_value: a translation whose whitespace was rewritten
//   - duplicate_key: a key that appears twice in the same group
package diagnostic
