// Package shell generates the profile snippets devboot appends (history exports,
// aliases, the terminal-guarded switch to the alternate shell) and performs the
// same guarded switch at runtime for `devboot shell` and `devboot run --exec-shell`.
//
// The terminal guard matters in automated image builds: exec'ing an interactive
// shell without a terminal waits for input that never arrives.
package shell
