// Package doctor verifies a bootstrapped environment: required binaries, the
// history store and its owner, the profile blocks devboot appends, and the
// selected theme.
package doctor
