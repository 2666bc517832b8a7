// Package ir provides canonical serialization and content-addressed
// fingerprints for configurator state.
//
// ir imports nothing internal. Canonical JSON follows RFC 8785 for the value
// shapes the configurator produces: strings, integers, booleans, arrays and
// objects. Floats and null are rejected so identical configurations always
// hash identically.
package ir
