package contract

import "context"

// RawResult is one persisted value with the user name it is stored under.
type RawResult struct {
	UserName string
	Value    []byte
}

// ResultRepository is a key/value store of JSON-encoded user records.
// Values are kept as raw bytes so corrupt entries surface to the caller
// instead of failing a whole listing.
type ResultRepository interface {
	// Get returns found=false and no error for an absent key.
	Get(ctx context.Context, userName string) (value []byte, found bool, err error)
	Put(ctx context.Context, userName string, value []byte) error
	ListRaw(ctx context.Context) ([]RawResult, error)
}
