package client

import (
	"context"
	"encoding/json"
	"fmt"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
	"net/http"
	"net/url"
)

// ReservationClient calls the reservation API on behalf of one principal.
type ReservationClient struct {
	httpClient *HttpClient
}

func NewReservationClient(baseURL string, token string) *ReservationClient {
	return &ReservationClient{
		httpClient: NewHttpClient(baseURL).WithToken(token),
	}
}

// Create books a room. idempotencyKey may be empty.
func (c *ReservationClient) Create(ctx context.Context, req model.CreateReservationRequest, idempotencyKey string) (*model.ReservationView, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}

	resp, err := c.httpClient.POSTWithHeaders(ctx, "/api/client/reservations", req, headers)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}

	var view model.ReservationView
	if err := decodeData(resp, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *ReservationClient) ListOwn(ctx context.Context) ([]model.ReservationView, error) {
	return c.list(ctx, "/api/client/reservations")
}

func (c *ReservationClient) ListForUser(ctx context.Context, userID string) ([]model.ReservationView, error) {
	return c.list(ctx, "/api/manager/reservations/"+url.PathEscape(userID))
}

func (c *ReservationClient) DeleteOwn(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/client/reservations/"+url.PathEscape(id))
}

func (c *ReservationClient) Delete(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/manager/reservations/"+url.PathEscape(id))
}

func (c *ReservationClient) list(ctx context.Context, path string) ([]model.ReservationView, error) {
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	views := []model.ReservationView{}
	if err := decodeData(resp, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *ReservationClient) delete(ctx context.Context, path string) error {
	resp, err := c.httpClient.DELETE(ctx, path)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent {
		return decodeError(resp)
	}
	return nil
}

func decodeData(resp *Response, target any) error {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return fmt.Errorf("could not decode response wrapper: %s: %w", resp.ToString(), err)
	}
	if err := json.Unmarshal(wrapper.Data, target); err != nil {
		return fmt.Errorf("could not decode response data: %w", err)
	}
	return nil
}

// decodeError rebuilds the AppError the server rendered, so callers can use
// apperrors.HasCode on client errors just like on service errors.
func decodeError(resp *Response) error {
	var body apperrors.ErrorResponse
	if err := resp.DecodeJSON(&body); err != nil || body.Code == "" {
		return apperrors.New(apperrors.CodeInternal, fmt.Sprintf("unexpected response: %s", resp.ToString()), resp.StatusCode)
	}
	return apperrors.New(body.Code, body.Error, resp.StatusCode).WithDetails(body.Details)
}
