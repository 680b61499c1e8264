// Package resolver provides the DNS lookups used during reconciliation.
//
// Lookups are bounded by a timeout, cached for the lifetime of the Resolver
// and collapsed with singleflight so that concurrent requests for the same
// hostname issue a single query. Failures are logged and yield no addresses.
package resolver
