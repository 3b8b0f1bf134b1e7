package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/labstack/gommon/log"

	"companymatch/cmd/internal/domain/entity"
	"companymatch/cmd/internal/infrastructure/registry"
)

type RegistryStore interface {
	BeginRebuild() error
	InsertBatch(companies []*entity.Company) error
	BuildSearchIndex() error
	Count() (int64, error)
	Ready() bool
}

type SourceResolver interface {
	Resolve(ctx context.Context, source string, force bool) (string, error)
}

// IndexService owns the one-time batch build of the registry store and
// its full-text index. The build blocks; the store must not serve
// queries until it has completed.
type IndexService struct {
	Store    RegistryStore
	Resolver SourceResolver
}

const buildBatchSize = 1000

func NewIndexService(store RegistryStore, resolver SourceResolver) *IndexService {
	return &IndexService{Store: store, Resolver: resolver}
}

// EnsureBuilt builds the store when it does not exist yet or when force
// is set; an already-built store is reused as-is otherwise.
func (s *IndexService) EnsureBuilt(ctx context.Context, source string, force bool) error {
	if !force && s.Store.Ready() {
		count, err := s.Store.Count()
		if err != nil {
			return err
		}
		log.Infof("Registry store already built with %d companies", count)
		return nil
	}

	if source == "" {
		return fmt.Errorf("%w: no data source configured", registry.ErrSourceNotFound)
	}
	return s.Build(ctx, source, force)
}

// Build drops and repopulates the registry table from the source, then
// rebuilds the full-text index. There is no incremental path.
func (s *IndexService) Build(ctx context.Context, source string, force bool) error {
	start := time.Now()

	csvPath, err := s.Resolver.Resolve(ctx, source, force)
	if err != nil {
		return err
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	reader, err := registry.NewRowReader(f)
	if err != nil {
		return err
	}

	log.Infof("Rebuilding registry store from %s", csvPath)
	if err := s.Store.BeginRebuild(); err != nil {
		return err
	}

	batch := make([]*entity.Company, 0, buildBatchSize)
	for {
		company, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		batch = append(batch, company)
		if len(batch) == buildBatchSize {
			if err := s.Store.InsertBatch(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := s.Store.InsertBatch(batch); err != nil {
		return err
	}

	if err := s.Store.BuildSearchIndex(); err != nil {
		return err
	}

	count, err := s.Store.Count()
	if err != nil {
		return err
	}
	log.Infof("Registry store built: %d companies indexed in %s", count, time.Since(start).Round(time.Second))
	return nil
}
