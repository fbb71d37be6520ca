//go:build mage

// Package main provides build targets for the roster project using Mage.
//
// Usage:
//
//	mage build        Compile the roster binary to bin/
//	mage install      Install roster to GOPATH/bin
//	mage clean        Remove build artifacts
//	mage test:all     Run every test
//	mage test:unit    Run tests in short mode
//	mage test:race    Run every test with the race detector
//	mage test:cover   Write a coverage profile to bin/coverage.out
//	mage lint         Run golangci-lint
//	mage vet          Run go vet
//	mage stats        Print student, course and migration counts for the data dir as JSON
package main
