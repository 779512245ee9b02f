package domain

// Store is the durable key→bytes store the engines persist into.
// Get returns (nil, nil) for a missing key; malformed values are the
// caller's problem and degrade to fresh defaults.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
