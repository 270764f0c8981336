package people

import (
	"context"
	"errors"
)

// ErrAccountExists is returned by provisioners when the identity
// provider already holds an account for the address. Callers treat it
// as success: the profile is still created locally.
var ErrAccountExists = errors.New("account already exists")

type (
	// Account is the payload sent to the identity provider.
	Account struct {
		Email    string
		Password string
		FullName string
		Role     string
	}

	// AccountProvisioner creates login accounts with the external
	// identity provider. Provisioning failure must never abort local
	// profile creation.
	AccountProvisioner interface {
		CreateAccount(ctx context.Context, acct Account) (externalID string, err error)
	}
)
