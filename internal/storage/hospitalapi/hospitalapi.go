// Package hospitalapi provides an HTTP-backed implementation of the
// storage.Storage interface. It talks to the remote hospital collection
// mounted at <base_url>/hospitalapi.
//
// Route table consumed:
//
//	GET    /all          → list every record
//	POST   /add          → create a record (body ignored on success)
//	PUT    /update       → replace a record by id (body ignored on success)
//	DELETE /delete/{id}  → delete a record, body is a plain-text message
//	GET    /get/{id}     → fetch one record, non-2xx means not found
package hospitalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aanand-mishra/hospital-admin/internal/config"
	"github.com/aanand-mishra/hospital-admin/internal/storage"
	"github.com/aanand-mishra/hospital-admin/internal/types"
)

// CollectionPath is appended to the configured base URL.
const CollectionPath = "/hospitalapi"

// HospitalAPI is the concrete implementation of storage.Storage.
// The embedded *http.Client is safe for concurrent use.
type HospitalAPI struct {
	baseURL    string
	httpClient *http.Client
}

// New validates cfg.Remote.BaseURL and returns a ready-to-use client.
// A zero cfg.Remote.Timeout leaves the client without a timeout.
func New(cfg *config.Config) (*HospitalAPI, error) {
	base := strings.TrimRight(cfg.Remote.BaseURL, "/")

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("hospitalapi.New: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("hospitalapi.New: base url %q must be absolute", cfg.Remote.BaseURL)
	}

	return &HospitalAPI{
		baseURL:    base + CollectionPath,
		httpClient: &http.Client{Timeout: cfg.Remote.Timeout},
	}, nil
}

// GetHospitals calls GET /all.
func (a *HospitalAPI) GetHospitals(ctx context.Context) ([]types.Hospital, error) {
	resp, err := a.do(ctx, http.MethodGet, "/all", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	hospitals := make([]types.Hospital, 0)
	if err := json.NewDecoder(resp.Body).Decode(&hospitals); err != nil {
		return nil, fmt.Errorf("GetHospitals: decode: %w: %w", storage.ErrRemoteCall, err)
	}
	// A JSON null decodes into a nil slice.
	if hospitals == nil {
		hospitals = make([]types.Hospital, 0)
	}

	return hospitals, nil
}

// AddHospital calls POST /add with the record as JSON.
func (a *HospitalAPI) AddHospital(ctx context.Context, hospital types.Hospital) error {
	resp, err := a.do(ctx, http.MethodPost, "/add", hospital)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// UpdateHospital calls PUT /update with the full record as JSON.
func (a *HospitalAPI) UpdateHospital(ctx context.Context, hospital types.Hospital) error {
	resp, err := a.do(ctx, http.MethodPut, "/update", hospital)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// DeleteHospitalByID calls DELETE /delete/{id} and returns the response
// body unchanged.
func (a *HospitalAPI) DeleteHospitalByID(ctx context.Context, id string) (string, error) {
	resp, err := a.do(ctx, http.MethodDelete, "/delete/"+url.PathEscape(id), nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("DeleteHospitalByID: read body: %w: %w", storage.ErrRemoteCall, err)
	}

	return string(body), nil
}

// GetHospitalByID calls GET /get/{id}.
func (a *HospitalAPI) GetHospitalByID(ctx context.Context, id string) (types.Hospital, error) {
	resp, err := a.do(ctx, http.MethodGet, "/get/"+url.PathEscape(id), nil)
	if err != nil {
		return types.Hospital{}, err
	}
	defer resp.Body.Close()

	var hospital types.Hospital
	if err := json.NewDecoder(resp.Body).Decode(&hospital); err != nil {
		return types.Hospital{}, fmt.Errorf("GetHospitalByID: decode: %w: %w", storage.ErrRemoteCall, err)
	}

	return hospital, nil
}

// do sends one request and returns the response only for 2xx statuses.
// Every failure wraps storage.ErrRemoteCall. The caller closes the body.
func (a *HospitalAPI) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode: %w: %w", method, path, storage.ErrRemoteCall, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: new request: %w: %w", method, path, storage.ErrRemoteCall, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodDelete {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", method, path, storage.ErrRemoteCall, err)
	}

	slog.Debug("remote call",
		slog.String("method", method),
		slog.String("path", CollectionPath+path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Keep a bounded slice of the upstream body for the log line only.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s returned %d: %s: %w",
			method, path, resp.StatusCode, strings.TrimSpace(string(snippet)), storage.ErrRemoteCall)
	}

	return resp, nil
}

// drain discards and closes a response body whose content is ignored.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
