package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/internal/utils"
	"github.com/MKhiriev/dataset-hub/models"
)

type httpAPIClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAPIClient returns an [APIClient] for the API served at address.
// A missing scheme defaults to http. The client keeps session cookies in a
// cookie jar and also sends the token as a Bearer header.
func NewHTTPAPIClient(address string, timeout time.Duration, logger *logger.Logger) (APIClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid api address: %w", err)
	}

	logger.Debug().Str("base_url", baseURL).Msg("creating api client")
	return &httpAPIClient{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAPIClient) setToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAPIClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpAPIClient) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func (h *httpAPIClient) Register(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	var user models.User

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&user).
		Post("/users/register/")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpAPIClient) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	var user models.User

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&user).
		Post("/users/login/")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		h.logger.Err(err).Str("func", "*httpAPIClient.Login").Msg("login response carries no bearer token")
		return models.User{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.setToken(token)
	return user, nil
}

func (h *httpAPIClient) Logout(ctx context.Context) error {
	resp, err := h.request(ctx).Post("/users/logout/")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.setToken("")
	return nil
}

func (h *httpAPIClient) Profile(ctx context.Context) (models.User, error) {
	var user models.User

	resp, err := h.request(ctx).
		SetResult(&user).
		Get("/users/profile/")
	if err != nil {
		return models.User{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// UpdateProfile sends a partial update: nil fields are left unchanged.
func (h *httpAPIClient) UpdateProfile(ctx context.Context, request models.UpdateProfileRequest) (models.User, error) {
	var user models.User

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&user).
		Patch("/users/update/")
	if err != nil {
		return models.User{}, fmt.Errorf("update profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpAPIClient) ChangePassword(ctx context.Context, request models.ChangePasswordRequest) error {
	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Put("/users/change-password/")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpAPIClient) ListDatasets(ctx context.Context) ([]models.DatasetResponse, error) {
	var datasets []models.DatasetResponse

	resp, err := h.request(ctx).
		SetResult(&datasets).
		Get("/datasets/")
	if err != nil {
		return nil, fmt.Errorf("list datasets request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return datasets, nil
}

func (h *httpAPIClient) GetDataset(ctx context.Context, datasetID int64) (models.DatasetResponse, error) {
	var dataset models.DatasetResponse

	resp, err := h.request(ctx).
		SetPathParam("id", strconv.FormatInt(datasetID, 10)).
		SetResult(&dataset).
		Get("/datasets/{id}/")
	if err != nil {
		return models.DatasetResponse{}, fmt.Errorf("get dataset request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DatasetResponse{}, err
	}

	return dataset, nil
}

func (h *httpAPIClient) CreateDataset(ctx context.Context, request models.CreateDatasetRequest) (models.DatasetResponse, error) {
	var dataset models.DatasetResponse

	form := make(map[string]string, 2)
	if request.Title != nil {
		form["title"] = *request.Title
	}
	if request.Description != nil {
		form["description"] = *request.Description
	}

	req := h.request(ctx).
		SetMultipartFormData(form).
		SetResult(&dataset)
	if request.File != nil {
		req.SetMultipartField("file", request.File.Name, request.File.ContentType, request.File.Reader)
	}

	resp, err := req.Post("/datasets/create/")
	if err != nil {
		return models.DatasetResponse{}, fmt.Errorf("create dataset request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DatasetResponse{}, err
	}

	return dataset, nil
}

func (h *httpAPIClient) Version(ctx context.Context) (string, error) {
	resp, err := h.request(ctx).
		SetHeader("Accept", "text/plain").
		Get("/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpAPIClient) Health(ctx context.Context) error {
	resp, err := h.request(ctx).Get("/health/")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	return mapHTTPError(resp)
}
