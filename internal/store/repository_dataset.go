package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/models"
)

type datasetRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDatasetRepository constructs a [DatasetRepository] backed by db.
func NewDatasetRepository(db *DB, logger *logger.Logger) DatasetRepository {
	logger.Debug().Msg("creating dataset repository")
	return &datasetRepository{
		db:     db,
		logger: logger,
	}
}

// CreateDataset inserts dataset and reads it back joined with its owner, so
// the returned value carries OwnerUsername.
func (r *datasetRepository) CreateDataset(ctx context.Context, dataset models.Dataset) (models.Dataset, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.createDatasetQuery(dataset)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.CreateDataset").Msg("error building query")
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		log.Err(err).Str("func", "*datasetRepository.CreateDataset").Msg("error inserting dataset")
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return r.FindDatasetByID(ctx, id)
}

func (r *datasetRepository) ListDatasets(ctx context.Context) ([]models.Dataset, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.listDatasetsQuery()
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.ListDatasets").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.ListDatasets").Msg("error querying datasets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	datasets := make([]models.Dataset, 0)
	for rows.Next() {
		dataset, err := scanDataset(rows)
		if err != nil {
			log.Err(err).Str("func", "*datasetRepository.ListDatasets").Msg("error scanning dataset")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		datasets = append(datasets, dataset)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*datasetRepository.ListDatasets").Msg("error iterating datasets")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return datasets, nil
}

func (r *datasetRepository) FindDatasetByID(ctx context.Context, datasetID int64) (models.Dataset, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.findDatasetByIDQuery(datasetID)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.FindDatasetByID").Msg("error building query")
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	dataset, err := scanDataset(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Dataset{}, ErrDatasetNotFound
	case err != nil:
		log.Err(err).Str("func", "*datasetRepository.FindDatasetByID").Int64("dataset_id", datasetID).Msg("error querying dataset")
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return dataset, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDataset(row rowScanner) (models.Dataset, error) {
	var (
		dataset models.Dataset
		file    sql.NullString
	)

	err := row.Scan(
		&dataset.ID,
		&dataset.Title,
		&dataset.Description,
		&file,
		&dataset.CreatedAt,
		&dataset.UpdatedAt,
		&dataset.OwnerID,
		&dataset.OwnerUsername,
	)
	if err != nil {
		return models.Dataset{}, err
	}
	dataset.File = file.String

	return dataset, nil
}
