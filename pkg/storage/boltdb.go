package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cascadeio/cascade/pkg/cascadeerr"
	"github.com/cascadeio/cascade/pkg/log"
	"github.com/cascadeio/cascade/pkg/types"
	bolt "go.etcd.io/bbolt"
)

var logger = log.WithComponent(log.ComponentStore)

var (
	bucketModelState    = []byte("model_state")
	bucketModelPackage  = []byte("model_package")
	bucketPackageState  = []byte("package_state")
	bucketPackageModels = []byte("package_models")
)

// Config holds BoltDB store configuration.
type Config struct {
	DataDir string
}

// BoltStore implements Store on top of a local BoltDB file. It is the
// concrete, embeddable stand-in for the external KV store the
// cascade engine is specified against: every bucket maps directly
// onto one segment of the fixed key schema.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if necessary) a BoltDB-backed store
// under cfg.DataDir.
func NewBoltStore(cfg Config) (*BoltStore, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}

	dbPath := filepath.Join(cfg.DataDir, "cascade.db")
	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		logger.Warn().Err(err).Str("path", dbPath).Msg("failed to open database")
		return nil, cascadeerr.NewStoreUnavailable("failed to open database", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketModelState, bucketModelPackage, bucketPackageState, bucketPackageModels} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, cascadeerr.NewStoreUnavailable("failed to initialize buckets", err)
	}

	logger.Info().Str("path", dbPath).Msg("store opened")
	return &BoltStore{db: db}, nil
}

// Close closes the underlying database file.
func (s *BoltStore) Close() error {
	logger.Info().Msg("store closing")
	return s.db.Close()
}

func (s *BoltStore) ReadModelState(ctx context.Context, name string) (types.ModelState, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var state types.ModelState
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketModelState).Get([]byte(name))
		if v == nil {
			return nil
		}
		found = true
		state = types.ModelState(v)
		return nil
	})
	if err != nil {
		return "", false, cascadeerr.NewStoreUnavailable("read model state", err).WithResource(name).WithOperation("ReadModelState")
	}
	return state, found, nil
}

func (s *BoltStore) WriteModelState(ctx context.Context, name string, state types.ModelState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketModelState).Put([]byte(name), []byte(state))
	})
	if err != nil {
		return cascadeerr.NewStoreUnavailable("write model state", err).WithResource(name).WithOperation("WriteModelState")
	}
	return nil
}

func (s *BoltStore) ReadPackageState(ctx context.Context, name string) (types.PackageState, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var state types.PackageState
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketPackageState).Get([]byte(name))
		if v == nil {
			return nil
		}
		found = true
		state = types.PackageState(v)
		return nil
	})
	if err != nil {
		return "", false, cascadeerr.NewStoreUnavailable("read package state", err).WithResource(name).WithOperation("ReadPackageState")
	}
	return state, found, nil
}

func (s *BoltStore) WritePackageState(ctx context.Context, name string, state types.PackageState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPackageState).Put([]byte(name), []byte(state))
	})
	if err != nil {
		return cascadeerr.NewStoreUnavailable("write package state", err).WithResource(name).WithOperation("WritePackageState")
	}
	return nil
}

// modelsBucketKey derives the package_models bucket key
// "{packageName}/{modelName}" holding one member model's membership
// marker, the bucket's form of /package/{packageName}/models/{modelName}.
func modelsBucketKey(packageName, modelName string) []byte {
	return []byte(packageName + "/" + modelName)
}

func (s *BoltStore) ListModelsOfPackage(ctx context.Context, packageName string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(packageName + "/")
	var models []string
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketPackageModels).Cursor()
		for k, _ := c.Seek(prefix); k != nil; k, _ = c.Next() {
			if len(k) < len(prefix) || string(k[:len(prefix)]) != string(prefix) {
				break
			}
			models = append(models, string(k[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, cascadeerr.NewStoreUnavailable("list package members", err).WithResource(packageName).WithOperation("ListModelsOfPackage")
	}
	return models, nil
}

func (s *BoltStore) ReadParentPackage(ctx context.Context, modelName string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var pkg string
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketModelPackage).Get([]byte(modelName))
		if v == nil {
			return nil
		}
		found = true
		pkg = string(v)
		return nil
	})
	if err != nil {
		return "", false, cascadeerr.NewStoreUnavailable("read parent package", err).WithResource(modelName).WithOperation("ReadParentPackage")
	}
	return pkg, found, nil
}

func (s *BoltStore) RegisterMembership(ctx context.Context, packageName, modelName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketModelPackage).Put([]byte(modelName), []byte(packageName)); err != nil {
			return err
		}
		return tx.Bucket(bucketPackageModels).Put(modelsBucketKey(packageName, modelName), []byte{1})
	})
	if err != nil {
		return cascadeerr.NewStoreUnavailable("register membership", err).WithResource(modelName).WithOperation("RegisterMembership")
	}
	return nil
}
