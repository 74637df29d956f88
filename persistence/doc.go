// Package persistence serializes finished clusterings to a compact binary
// snapshot format and moves snapshots in and out of a blobstore.Store.
//
// A snapshot is a fixed header (magic, format version, compression codec,
// payload length, CRC32 of the payload) followed by the payload: centers as
// raw float64 coordinates and cluster memberships as serialized roaring
// bitmaps, optionally compressed with zstd or lz4.
package persistence
