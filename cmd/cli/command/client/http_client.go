package client

// http_client.go = handles HTTP client functionality for the cineforo CLI.

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cineforo/internal/microservices/http-api/dto"
)

// defines the HTTP client structure and methods
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// APIError is a non-2xx answer from the API, carrying its human readable message
type APIError struct {
	StatusCode int
	Message    string
	Field      string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.ToLower(http.StatusText(e.StatusCode))
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, msg)
	}
	return msg
}

// IsUnauthorized reports whether err is a 401 from the API
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// constructor for HTTP client
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// set token for HTTP client
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// do sends a JSON request and decodes a JSON answer into out when out is non-nil
func (c *HTTPClient) do(method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonData)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *HTTPClient) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach the server: %w", err)
	}
	defer resp.Body.Close() // Ensure the response body is closed

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
		Field string `json:"field"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Error
		apiErr.Field = body.Field
	}
	return apiErr
}

// register method for HTTP client
func (c *HTTPClient) Register(request dto.RegisterRequest) (*dto.UserResponse, error) {
	var result dto.UserResponse
	if err := c.do(http.MethodPost, "/api/auth/register", nil, request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// login method for HTTP client
func (c *HTTPClient) Login(request dto.LoginRequest) (*dto.AuthResponse, error) {
	var result dto.AuthResponse
	if err := c.do(http.MethodPost, "/api/auth/login", nil, request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// refresh token method for HTTP client, the server rotates both tokens
func (c *HTTPClient) RefreshToken(refreshToken string) (*dto.AuthResponse, error) {
	var result dto.AuthResponse
	body := dto.RefreshTokenRequest{RefreshToken: refreshToken}
	if err := c.do(http.MethodPost, "/api/auth/refresh", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// revoke token method for HTTP client
func (c *HTTPClient) RevokeToken(refreshToken string) error {
	return c.do(http.MethodPost, "/api/auth/logout", nil, dto.RevokeTokenRequest{RefreshToken: refreshToken}, nil)
}

// Profile

func (c *HTTPClient) Me() (*dto.UserResponse, error) {
	var result dto.UserResponse
	if err := c.do(http.MethodGet, "/api/users/me", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) UpdateProfile(request dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var result dto.UserResponse
	if err := c.do(http.MethodPut, "/api/users/me", nil, request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ChangePassword(request dto.ChangePasswordRequest) error {
	return c.do(http.MethodPut, "/api/users/me/password", nil, request, nil)
}

// UploadAvatar posts the image as multipart field "avatar"
func (c *HTTPClient) UploadAvatar(filename string, image io.Reader) (*dto.UserResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("avatar", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/users/me/avatar", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result dto.UserResponse
	if err := c.send(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Stats() (*dto.UserStatsResponse, error) {
	var result dto.UserStatsResponse
	if err := c.do(http.MethodGet, "/api/users/me/stats", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) SetRole(userID, role string) (*dto.UserResponse, error) {
	var result dto.UserResponse
	path := "/api/users/" + url.PathEscape(userID) + "/role"
	if err := c.do(http.MethodPut, path, nil, dto.UpdateRoleRequest{Role: role}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Genres() ([]string, error) {
	var result dto.ReferenceListResponse
	if err := c.do(http.MethodGet, "/api/genres", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *HTTPClient) Categories() ([]string, error) {
	var result dto.ReferenceListResponse
	if err := c.do(http.MethodGet, "/api/categories", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}
