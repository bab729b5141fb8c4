package store

import (
	"strconv"

	"github.com/cockroachdb/pebble"

	"inkpress/pkg/logger"
)

const schemaKey = "system:schema"

// schemaVersion is bumped whenever the cached article layout changes
// incompatibly. Cached entries are re-fetchable, so migration is a
// wipe rather than a rewrite.
const schemaVersion = 1

// SyncSchema reconciles the on-disk layout with the current schema
// version. Idempotent and safe to run on every open.
func SyncSchema() error {
	if db == nil {
		return notOpened()
	}

	stored := 0
	v, closer, err := db.Get([]byte(schemaKey))
	if err == nil {
		if n, perr := strconv.Atoi(string(v)); perr == nil {
			stored = n
		}
		_ = closer.Close()
	} else if err != pebble.ErrNotFound {
		return err
	}

	if stored == schemaVersion {
		return nil
	}

	if stored != 0 {
		logger.Info("schema_migrating", "from", stored, "to", schemaVersion)
		iter, err := db.NewIter(prefixBounds(cachePrefix))
		if err != nil {
			return err
		}
		var keys [][]byte
		for iter.First(); iter.Valid(); iter.Next() {
			keys = append(keys, append([]byte(nil), iter.Key()...))
		}
		ierr := iter.Error()
		_ = iter.Close()
		if ierr != nil {
			return ierr
		}
		for _, k := range keys {
			if err := db.Delete(k, pebble.NoSync); err != nil {
				return err
			}
		}
		logger.Info("schema_cache_dropped", "entries", len(keys))
	}

	return db.Set([]byte(schemaKey), []byte(strconv.Itoa(schemaVersion)), pebble.Sync)
}
