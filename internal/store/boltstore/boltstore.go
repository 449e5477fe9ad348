// Package boltstore keeps items in a bbolt file. Keys are big-endian ids so
// the bucket cursor walks items in id order.
package boltstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/idilsaglam/itemed/internal/model"
)

const bucketItems = "items"

type Store struct {
	db    *bolt.DB
	fresh bool
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt: %w", err)
	}
	fresh := false
	err = db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(bucketItems)) != nil {
			return nil
		}
		fresh = true
		_, err := tx.CreateBucket([]byte(bucketItems))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &Store{db: db, fresh: fresh}, nil
}

func key(id int64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], uint64(id))
	return k[:]
}

func (s *Store) Load(context.Context) ([]model.Item, error) {
	items := []model.Item{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketItems))
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var it model.Item
			if err := json.Unmarshal(v, &it); err != nil {
				return fmt.Errorf("decode item %x: %w", k, err)
			}
			items = append(items, it)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) Fresh(context.Context) (bool, error) { return s.fresh, nil }

func (s *Store) Put(_ context.Context, it model.Item) error {
	v, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("marshal item %d: %w", it.ID, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketItems)).Put(key(it.ID), v)
	})
	if err != nil {
		return err
	}
	s.fresh = false
	return nil
}

func (s *Store) Delete(_ context.Context, id int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketItems)).Delete(key(id))
	})
}

func (s *Store) Close() error { return s.db.Close() }
