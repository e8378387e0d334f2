// Package driver surrounds the listing correlator with the process
// glue it deliberately excludes: compiler profiles that rewrite a
// compile command into a listing-producing one, temp-copy management,
// compiler invocation, and a debounced file watcher that keeps at most
// one correlation in flight per source file and drops stale results.
package driver
