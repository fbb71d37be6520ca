// Package types defines the Store interface, the student record and course
// table types, configuration, and the standard errors for the roster.
package types
