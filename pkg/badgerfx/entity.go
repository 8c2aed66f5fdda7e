package badgerfx

// Entity is a value stored by Repository.
//
// StorageKey is the primary key, StorageIndexes are secondary keys that point to it.
type Entity interface {
	StorageKey() string
	StorageIndexes() []string

	MarshalStorage() ([]byte, error)
	UnmarshalStorage(data []byte) error
}
