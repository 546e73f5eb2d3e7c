package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/raushankrgupta/harvesthub-seeder/models"
	"github.com/raushankrgupta/harvesthub-seeder/utils"
)

// Login exchanges credentials for a bearer token. Any outcome other than a
// 200 response carrying a non-empty token is an *AuthenticationFailure.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Print(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Login]")

	payload, err := json.Marshal(models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return "", &AuthenticationFailure{Err: fmt.Errorf("failed to marshal login payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(LoginPath), bytes.NewReader(payload))
	if err != nil {
		return "", &AuthenticationFailure{Err: fmt.Errorf("failed to create login request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	utils.AddToLogMessagef(&logMessageBuilder, "POST %s as %s", req.URL, username)
	resp, err := c.httpClient().Do(req)
	if err != nil {
		utils.AddToLogMessagef(&logMessageBuilder, "Request failed: %v", err)
		return "", &AuthenticationFailure{Err: fmt.Errorf("failed to send login request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AuthenticationFailure{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read login response: %w", err)}
	}
	utils.AddToLogMessagef(&logMessageBuilder, "Status: %d", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return "", &AuthenticationFailure{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var loginResp models.LoginResponse
	if err := json.Unmarshal(body, &loginResp); err != nil {
		return "", &AuthenticationFailure{StatusCode: resp.StatusCode, Body: string(body), Err: fmt.Errorf("failed to decode login response: %w", err)}
	}
	if loginResp.Token == "" {
		return "", &AuthenticationFailure{StatusCode: resp.StatusCode, Body: string(body), Err: fmt.Errorf("response did not contain a token")}
	}

	if info, err := utils.InspectToken(loginResp.Token); err == nil {
		utils.AddToLogMessagef(&logMessageBuilder, "Token subject: %s", info.Subject)
		if !info.ExpiresAt.IsZero() {
			utils.AddToLogMessagef(&logMessageBuilder, "Token expires: %s", info.ExpiresAt.Format(time.RFC3339))
		}
	} else {
		utils.AddToLogMessage(&logMessageBuilder, "Opaque token received")
	}

	return loginResp.Token, nil
}
