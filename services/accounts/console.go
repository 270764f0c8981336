package accountsvc

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/people"
)

// consoleProvisioner logs account creations instead of calling the
// identity provider; used in dev and test environments. It remembers
// emails so repeated provisioning behaves like the real service.
type consoleProvisioner struct {
	logger core.Logger

	mu   sync.Mutex
	seen map[string]string
}

var _ people.AccountProvisioner = (*consoleProvisioner)(nil)

func NewConsoleProvisioner(logger core.Logger) *consoleProvisioner {
	return &consoleProvisioner{
		logger: logger,
		seen:   make(map[string]string),
	}
}

func (p *consoleProvisioner) CreateAccount(_ context.Context, acct people.Account) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.seen[acct.Email]; ok {
		return "", people.ErrAccountExists
	}
	id := uuid.New().String()
	p.seen[acct.Email] = id
	p.logger.Info("account provisioned", map[string]interface{}{
		"email": acct.Email,
		"role":  acct.Role,
		"id":    id,
	})
	return id, nil
}
