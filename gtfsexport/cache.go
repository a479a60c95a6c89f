package gtfsexport

import (
	bolt "go.etcd.io/bbolt"
)

var stopIDBucket = []byte("stop_ids")

// StopIDCache persists the stop-name -> stop-ID assignment a merge run
// picked, so a later `ttgtfs batch --merge` run against an updated KOMPLET
// release reuses the same GTFS stop_id for a stop instead of renumbering
// every ID from scratch (a real concern for a feed regenerated on every
// KOMPLET release, per original_source/scripts/convert_tt_to_gtfs.py's
// update workflow). It wraps a single bbolt file, the same embedded-KV
// approach gtfs_factories.go uses for its own on-disk GTFS store.
type StopIDCache struct {
	db *bolt.DB
}

// OpenStopIDCache opens (creating if needed) the bbolt file at path.
func OpenStopIDCache(path string) (*StopIDCache, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stopIDBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &StopIDCache{db: db}, nil
}

// Close closes the underlying bbolt file.
func (c *StopIDCache) Close() error {
	return c.db.Close()
}

// Lookup returns the previously assigned ID for name, if any.
func (c *StopIDCache) Lookup(name string) (Key, bool) {
	var id Key
	var found bool
	_ = c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(stopIDBucket)
		if v := b.Get([]byte(name)); v != nil {
			id = Key(v)
			found = true
		}
		return nil
	})
	return id, found
}

// Store records the ID assigned to name for future runs.
func (c *StopIDCache) Store(name string, id Key) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(stopIDBucket)
		return b.Put([]byte(name), []byte(id))
	})
}
