// Package blobstore abstracts the storage that clustering snapshots are
// written to and read from: local disk, memory (for tests), or an object
// store such as S3 or MinIO (see the s3 and minio subpackages).
package blobstore
