package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/internal/store"
	"github.com/MKhiriev/dataset-hub/internal/utils"
	"github.com/MKhiriev/dataset-hub/models"
)

const (
	datasetFilePrefix = "datasets/"

	// maxStoredNameLength bounds the sanitized part of a blob key so the key
	// fits the 255 character file column together with the prefix and id.
	maxStoredNameLength = 100

	mockDatasetTitle       = "Mock Dataset"
	mockDatasetDescription = "This is a mock dataset for testing purposes."
)

type datasetService struct {
	userRepository    store.UserRepository
	datasetRepository store.DatasetRepository
	fileStorage       store.FileStorage
	ids               *utils.UUIDGenerator
	now               func() time.Time
	logger            *logger.Logger
}

func NewDatasetService(userRepository store.UserRepository, datasetRepository store.DatasetRepository, fileStorage store.FileStorage, logger *logger.Logger) DatasetService {
	logger.Debug().Msg("creating dataset service")
	return &datasetService{
		userRepository:    userRepository,
		datasetRepository: datasetRepository,
		fileStorage:       fileStorage,
		ids:               utils.NewUUIDGenerator(),
		now:               time.Now,
		logger:            logger,
	}
}

func (s *datasetService) ListDatasets(ctx context.Context) ([]models.Dataset, error) {
	datasets, err := s.datasetRepository.ListDatasets(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing datasets: %w", err)
	}

	return datasets, nil
}

// GetDataset returns [store.ErrDatasetNotFound] for ids that cannot exist.
func (s *datasetService) GetDataset(ctx context.Context, datasetID int64) (models.Dataset, error) {
	if datasetID <= 0 {
		return models.Dataset{}, store.ErrDatasetNotFound
	}

	dataset, err := s.datasetRepository.FindDatasetByID(ctx, datasetID)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("error loading dataset: %w", err)
	}

	return dataset, nil
}

// CreateDataset writes the file first and the row second. If the row cannot
// be written the file is removed again.
func (s *datasetService) CreateDataset(ctx context.Context, owner models.User, request models.CreateDatasetRequest) (models.Dataset, error) {
	log := logger.FromContext(ctx)

	if request.File == nil {
		return models.Dataset{}, errors.New("no file to store")
	}

	key := datasetFilePrefix + s.ids.Generate() + "_" + sanitizeFileName(request.File.Name)
	if err := s.fileStorage.Save(ctx, key, *request.File); err != nil {
		log.Err(err).Str("func", "*datasetService.CreateDataset").Msg("error storing dataset file")
		return models.Dataset{}, fmt.Errorf("error storing dataset file: %w", err)
	}

	now := s.now().UTC()
	dataset, err := s.datasetRepository.CreateDataset(ctx, models.Dataset{
		Title:       strings.TrimSpace(models.Value(request.Title)),
		Description: strings.TrimSpace(models.Value(request.Description)),
		File:        key,
		CreatedAt:   now,
		UpdatedAt:   now,
		OwnerID:     owner.UserID,
	})
	if err != nil {
		log.Err(err).Str("func", "*datasetService.CreateDataset").Str("key", key).Msg("error recording dataset, removing file")
		if delErr := s.fileStorage.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			log.Err(delErr).Str("key", key).Msg("error removing orphaned dataset file")
		}
		return models.Dataset{}, fmt.Errorf("error recording dataset: %w", err)
	}

	log.Info().Int64("dataset_id", dataset.ID).Int64("owner_id", owner.UserID).Msg("dataset created")
	return dataset, nil
}

func (s *datasetService) CreateMockDataset(ctx context.Context) (models.Dataset, error) {
	owner, err := s.userRepository.FirstUser(ctx)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.Dataset{}, ErrNoUsers
	}
	if err != nil {
		return models.Dataset{}, fmt.Errorf("error loading first user: %w", err)
	}

	now := s.now().UTC()
	dataset, err := s.datasetRepository.CreateDataset(ctx, models.Dataset{
		Title:       mockDatasetTitle,
		Description: mockDatasetDescription,
		CreatedAt:   now,
		UpdatedAt:   now,
		OwnerID:     owner.UserID,
	})
	if err != nil {
		return models.Dataset{}, fmt.Errorf("error recording dataset: %w", err)
	}

	return dataset, nil
}

// OpenFile opens the blob of an uploaded dataset. Keys outside the dataset
// prefix are reported as missing so nothing else stored next to the uploads
// can be served.
func (s *datasetService) OpenFile(ctx context.Context, key string) (models.StoredFile, error) {
	if !isDatasetFileKey(key) {
		logger.FromContext(ctx).Info().Str("key", key).Msg("refusing to open non-dataset file")
		return models.StoredFile{}, store.ErrFileNotFound
	}

	return s.fileStorage.Open(ctx, key)
}

func isDatasetFileKey(key string) bool {
	name, ok := strings.CutPrefix(key, datasetFilePrefix)
	return ok && name != "" && !strings.Contains(name, "/") && path.Clean(key) == key
}

// sanitizeFileName keeps the base name of a client-supplied file name and
// replaces everything except letters, digits, '.', '-' and '_' with '_'.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")
	name = path.Base(name)

	var sb strings.Builder
	for _, r := range name {
		switch {
		case r == '.' || r == '-' || r == '_':
			sb.WriteRune(r)
		case r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}

	clean := strings.TrimLeft(sb.String(), ".")
	if len(clean) > maxStoredNameLength {
		ext := path.Ext(clean)
		if len(ext) > 16 {
			ext = ""
		}
		clean = clean[:maxStoredNameLength-len(ext)] + ext
	}
	if clean == "" || clean == "_" {
		return "file"
	}

	return clean
}
