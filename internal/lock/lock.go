package lock

// Locker serializes work per key. Redeploys of the same service hold the lock
// while checking for an active session and triggering the deploy.
type Locker interface {
	WithLock(key string, f func() error) error
}
