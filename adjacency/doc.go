// Package adjacency provides a graph-neighbor lookup container: per-node
// neighbor sets with constant-ish time connection insert, erase, and query.
//
// It is a standalone utility; algorithms that consume neighborhood
// structure build one once and query it during their passes.
package adjacency
