package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type googleProfile struct {
	Sub     string `json:"sub"`
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Subject prefers the OpenID "sub" and falls back to the v2 "id".
func (p googleProfile) Subject() string {
	if p.Sub != "" {
		return p.Sub
	}
	return p.ID
}

func fetchProfile(ctx context.Context, client *http.Client, endpoint string) (googleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return googleProfile{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return googleProfile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleProfile{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var p googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return googleProfile{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if p.Subject() == "" {
		return googleProfile{}, fmt.Errorf("userinfo has no subject")
	}
	return p, nil
}
