package model

// StoredMedia describes an object written to media storage.
type StoredMedia struct {
	URL         string
	Key         string
	Format      string
	Size        int64
	ContentType string
}
