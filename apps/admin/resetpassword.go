package main

import (
	"context"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/people"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	ctx := context.Background()
	p, err := cli.personRepo.GetPerson(ctx, people.GetFilter{Email: core.CleanString(email, true)})
	if err != nil {
		return err
	}
	if err := p.SetPassword(pwd); err != nil {
		return err
	}
	if _, err := cli.personRepo.UpdatePerson(ctx, p); err != nil {
		return err
	}
	return nil
}
