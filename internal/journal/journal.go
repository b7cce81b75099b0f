// Package journal records completed materialization runs in a local bbolt
// database.
//
// Each run is stored under a short content-derived ID so repeated runs of the
// same input against the same target are easy to correlate. The payload is a
// zstd-compressed JSON record holding the canonical tree text, the report,
// and timing, which keeps the database small even for large trees.
package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/klauspost/compress/zstd"
	"go.etcd.io/bbolt"
	"lukechampine.com/blake3"

	"github.com/treeforge/treeforge/internal/materialize"
)

// Buckets
var (
	bucketRuns = []byte("runs") // run ID -> zstd(json(Record))
	bucketMeta = []byte("meta") // schema bookkeeping
)

const schemaVersion = "1"

// Record is one remembered run.
type Record struct {
	ID         string              `json:"id"`
	Target     string              `json:"target"`
	Format     string              `json:"format"`
	Canonical  string              `json:"canonical"` // canonical indented form of the parsed tree
	Report     *materialize.Report `json:"report"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
}

// DB is a handle to the run journal.
type DB struct{ *bbolt.DB }

// Open opens (creating if needed) the journal database at path.
func Open(path string) (*DB, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, e := tx.CreateBucketIfNotExists(bucketRuns); e != nil {
			return e
		}
		meta, e := tx.CreateBucketIfNotExists(bucketMeta)
		if e != nil {
			return e
		}
		return meta.Put([]byte("schema"), []byte(schemaVersion))
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize journal: %w", err)
	}
	return &DB{db}, nil
}

func (db *DB) Close() error { return db.DB.Close() }

// RunID derives the journal key for a run: the first 16 hex characters of
// blake3 over the canonical tree text, the target path, and the start time.
func RunID(canonical, target string, startedAt time.Time) string {
	h := blake3.New(32, nil)
	_, _ = io.WriteString(h, canonical)
	_, _ = io.WriteString(h, "\x00")
	_, _ = io.WriteString(h, target)
	_, _ = io.WriteString(h, "\x00")
	_, _ = io.WriteString(h, startedAt.UTC().Format(time.RFC3339Nano))
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// Append stores rec under its ID.
func (db *DB) Append(rec *Record) error {
	if rec.ID == "" {
		rec.ID = RunID(rec.Canonical, rec.Target, rec.StartedAt)
	}
	payload, err := encode(rec)
	if err != nil {
		return err
	}
	return db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).Put([]byte(rec.ID), payload)
	})
}

// Get loads one run by ID.
func (db *DB) Get(id string) (*Record, error) {
	var payload []byte
	err := db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketRuns).Get([]byte(id))
		if v == nil {
			return fmt.Errorf("run %s not found", id)
		}
		payload = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decode(payload)
}

// List returns all recorded runs, most recent first.
func (db *DB) List() ([]*Record, error) {
	var runs []*Record
	err := db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).ForEach(func(_, v []byte) error {
			rec, err := decode(v)
			if err != nil {
				return err
			}
			runs = append(runs, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}

// encode marshals and zstd-compresses a record.
func encode(rec *Record) ([]byte, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal run record: %w", err)
	}
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	if _, err := enc.Write(raw); err != nil {
		return nil, fmt.Errorf("zstd write: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("zstd close: %w", err)
	}
	return buf.Bytes(), nil
}

// decode decompresses and unmarshals a stored record.
func decode(payload []byte) (*Record, error) {
	dec, err := zstd.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("read zstd payload: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal run record: %w", err)
	}
	return &rec, nil
}
