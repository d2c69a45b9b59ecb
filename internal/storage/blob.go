package storage

import "io"

// BlobStore holds evaluation spec sheets and grade detail attachments. The
// grade engine only ever passes keys through; contents are opaque.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	SignedURL(key string) (string, error) // fs returns "file://..." for dev
}
