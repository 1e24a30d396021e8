// Package debug holds environment switched tracing for the resolver.
//
// Set any of JST_DEBUG_REFS, JST_DEBUG_SOURCE, JST_DEBUG_INHERIT or
// JST_DEBUG_CACHE to a true value to trace reference substitution,
// document loads, parent merges or registry hits on stderr.
package debug
