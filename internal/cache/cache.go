package cache

// Store is a concurrency safe key value store.
type Store[V any] interface {
	Store(key string, value V)
	Get(key string) (V, bool)
	Delete(key string)
	Keys() []string
}
