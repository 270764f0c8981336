package accountsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/people"
)

// httpProvisioner creates login accounts against the hosted identity
// provider's JSON API.
type httpProvisioner struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  core.Logger
}

var _ people.AccountProvisioner = (*httpProvisioner)(nil)

func NewHTTPProvisioner(conf *core.Config, logger core.Logger) *httpProvisioner {
	return &httpProvisioner{
		baseURL: conf.Accounts.BaseURL,
		apiKey:  conf.Accounts.ApiKey,
		client:  &http.Client{Timeout: conf.Accounts.Timeout},
		logger:  logger,
	}
}

type (
	createAccountRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}
	createAccountResponse struct {
		ID string `json:"id"`
	}
)

func (p *httpProvisioner) CreateAccount(ctx context.Context, acct people.Account) (string, error) {
	payload, err := json.Marshal(createAccountRequest{
		Email:    acct.Email,
		Password: acct.Password,
		FullName: acct.FullName,
		Role:     acct.Role,
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding account payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/accounts", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "building account request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	res, err := p.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling accounts api")
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusConflict:
		return "", people.ErrAccountExists
	case res.StatusCode >= http.StatusBadRequest:
		return "", errors.Errorf("accounts api: unexpected status %d", res.StatusCode)
	}

	var body createAccountResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", errors.Wrap(err, "decoding account response")
	}
	return body.ID, nil
}
