// Package s3 implements blobstore.Store on Amazon S3, with an optional
// DynamoDB-backed commit store for atomically publishing the CURRENT
// snapshot pointer across concurrent writers.
package s3
