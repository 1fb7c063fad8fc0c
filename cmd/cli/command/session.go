package command

import (
	"time"

	"cineforo/cmd/cli/authentication"
	"cineforo/cmd/cli/command/client"
	"cineforo/internal/microservices/http-api/dto"
)

// refresh a little before the server would reject the token
const expirySkew = 30 * time.Second

// GetAuthenticatedClient returns a client carrying the active user's access token,
// rotating the tokens first when the stored access token is about to expire
func GetAuthenticatedClient() (*client.HTTPClient, *authentication.StoredCredentials, error) {
	email, err := authentication.Active()
	if err != nil {
		return nil, nil, err
	}
	creds, err := authentication.GetTokens(email)
	if err != nil {
		return nil, nil, err
	}

	httpClient := client.NewHTTPClient(apiURL)
	if creds.Expired(time.Now().Add(expirySkew)) {
		resp, err := httpClient.RefreshToken(creds.RefreshToken)
		if err != nil {
			if client.IsUnauthorized(err) {
				_ = authentication.DeleteTokens(email)
				_ = authentication.ClearActive()
				return nil, nil, authentication.ErrNoSession
			}
			return nil, nil, err
		}
		creds.AccessToken = resp.AccessToken
		creds.RefreshToken = resp.RefreshToken
		creds.ExpiresAt = expiresAt(resp)
		if err := authentication.StoreTokens(email, creds); err != nil {
			return nil, nil, err
		}
	}

	httpClient.SetToken(creds.AccessToken)
	return httpClient, creds, nil
}

// saveSession stores the tokens of a fresh login and makes the user active
func saveSession(resp *dto.AuthResponse) error {
	creds := &authentication.StoredCredentials{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    expiresAt(resp),
	}
	if resp.User != nil {
		creds.UserID = resp.User.ID
		creds.Name = resp.User.Name
		creds.Email = resp.User.Email
		creds.Role = resp.User.Role
	}
	if err := authentication.StoreTokens(creds.Email, creds); err != nil {
		return err
	}
	return authentication.SetActive(creds.Email)
}

func expiresAt(resp *dto.AuthResponse) int64 {
	return time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix()
}
