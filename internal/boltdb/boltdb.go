// Package boltdb stores preferences in a single bbolt file.
package boltdb

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/alanbriolat/yt-thumbnail/internal/prefs"
)

var Buckets = struct {
	Metadata    []byte
	Preferences []byte
}{
	Metadata:    []byte("__metadata__"),
	Preferences: []byte("preferences"),
}

var MetadataKeys = struct {
	Version []byte
}{
	Version: []byte("version"),
}

var PreferenceKeys = struct {
	Theme      []byte
	RecentURLs []byte
}{
	Theme:      []byte("theme"),
	RecentURLs: []byte("recentUrls"),
}

const currentVersion = 1

type Database interface {
	Close() error

	prefs.Database
}

type database struct {
	*bbolt.DB
}

func New(path string) (_ Database, err error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) (err error) {
		// Ensure buckets exist
		var metadata *bbolt.Bucket
		if metadata, err = tx.CreateBucketIfNotExists(Buckets.Metadata); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(Buckets.Preferences); err != nil {
			return err
		}

		var version int
		if versionBytes := metadata.Get(MetadataKeys.Version); versionBytes == nil {
			version = 0
		} else if err = json.Unmarshal(versionBytes, &version); err != nil {
			return err
		}
		if version > currentVersion {
			return fmt.Errorf("database version %d is newer than supported version %d", version, currentVersion)
		}

		if versionBytes, err := json.Marshal(currentVersion); err != nil {
			return err
		} else if err = metadata.Put(MetadataKeys.Version, versionBytes); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &database{db}, nil
}

func (d database) GetTheme() (theme string, err error) {
	err = d.get(PreferenceKeys.Theme, &theme)
	return theme, err
}

func (d database) SetTheme(theme string) error {
	return d.put(PreferenceKeys.Theme, theme)
}

func (d database) ListRecentURLs() (urls []string, err error) {
	err = d.get(PreferenceKeys.RecentURLs, &urls)
	return urls, err
}

func (d database) WriteRecentURLs(urls []string) error {
	return d.put(PreferenceKeys.RecentURLs, urls)
}

// get decodes the JSON value stored at key into v, leaving v untouched if there is no value.
func (d database) get(key []byte, v interface{}) error {
	return d.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(Buckets.Preferences).Get(key)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, v)
	})
}

func (d database) put(key []byte, v interface{}) error {
	if data, err := json.Marshal(v); err != nil {
		return err
	} else {
		return d.Update(func(tx *bbolt.Tx) error {
			return tx.Bucket(Buckets.Preferences).Put(key, data)
		})
	}
}
