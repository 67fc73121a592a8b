package names

import (
	"fmt"

	"github.com/goccy/go-yaml"
	lru "github.com/hashicorp/golang-lru"
)

// DB is one name list indexed by both hash schemes. Lists ship as YAML
// resources (item names, quest facts, appearance names, ...) and are
// merged into a Resolver.
type DB struct {
	byCName map[uint64]string
	byTweak map[uint64]string
}

// NewDB creates an empty database.
func NewDB() *DB {
	return &DB{
		byCName: make(map[uint64]string),
		byTweak: make(map[uint64]string),
	}
}

type dbDoc struct {
	Names []string `yaml:"names"`
}

// LoadDB parses a YAML name list of the form
//
//	names:
//	  - Items.Preset_Ajax_Pimp
//	  - mq001_scene_start
func LoadDB(data []byte) (*DB, error) {
	doc := dbDoc{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("name list: %w", err)
	}
	db := NewDB()
	for _, n := range doc.Names {
		db.Add(n)
	}
	return db, nil
}

// Add indexes a name under both hash schemes.
func (db *DB) Add(name string) {
	db.byCName[CNameHash(name)] = name
	db.byTweak[TweakID(name)] = name
}

// Len returns the number of indexed names.
func (db *DB) Len() int {
	return len(db.byCName)
}

// CName returns the name content for a CName hash.
func (db *DB) CName(hash uint64) (string, bool) {
	s, ok := db.byCName[hash]
	return s, ok
}

// Tweak returns the name content for a TweakDBID.
func (db *DB) Tweak(id uint64) (string, bool) {
	s, ok := db.byTweak[id]
	return s, ok
}

type cacheKey struct {
	tweak bool
	hash  uint64
}

// Resolver answers reverse lookups across a set of databases. Results
// are LRU-cached, including the formatted placeholders for hashes no
// list knows, since a save tends to probe the same few thousand hashes
// over and over.
type Resolver struct {
	dbs   []*DB
	cache *lru.Cache
}

// NewResolver creates a resolver over dbs with a cache of cacheSize
// entries.
func NewResolver(cacheSize int, dbs ...*DB) (*Resolver, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{dbs: dbs, cache: cache}, nil
}

// CName resolves a CName hash to its content, or to the placeholder
// form <cname:HASH> when no database knows it.
func (r *Resolver) CName(hash uint64) string {
	return r.resolve(cacheKey{tweak: false, hash: hash})
}

// Tweak resolves a TweakDBID to its content, or to the placeholder
// form <tdbid:CRC:LEN> when no database knows it.
func (r *Resolver) Tweak(id uint64) string {
	return r.resolve(cacheKey{tweak: true, hash: id})
}

func (r *Resolver) resolve(key cacheKey) string {
	if v, ok := r.cache.Get(key); ok {
		return v.(string)
	}
	s := r.miss(key)
	r.cache.Add(key, s)
	return s
}

func (r *Resolver) miss(key cacheKey) string {
	for _, db := range r.dbs {
		if key.tweak {
			if s, ok := db.Tweak(key.hash); ok {
				return s
			}
		} else {
			if s, ok := db.CName(key.hash); ok {
				return s
			}
		}
	}
	if key.tweak {
		return fmt.Sprintf("<tdbid:%08X:%02X>", uint32(key.hash), uint8(key.hash>>32))
	}
	return fmt.Sprintf("<cname:%016X>", key.hash)
}
