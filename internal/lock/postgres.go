package lock

import (
	"hash/fnv"
	"io"

	"gorm.io/gorm"
)

// PostgresLocker uses transaction-scoped advisory locks so several watcher replicas
// sharing one database never trigger the same service twice.
type PostgresLocker struct {
	db *gorm.DB
}

func NewPostgresLocker(db *gorm.DB) Locker {
	return &PostgresLocker{db: db}
}

func (p *PostgresLocker) WithLock(key string, f func() error) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", lockID(key)).Error; err != nil {
			return err
		}
		return f()
	})
}

// lockID hashes key into the signed bigint space accepted by pg_advisory_xact_lock.
func lockID(key string) int64 {
	hasher := fnv.New64a()
	_, _ = io.WriteString(hasher, key)
	return int64(hasher.Sum64()) // #nosec G115
}
