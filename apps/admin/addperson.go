package main

import (
	"context"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/people"
)

// addPerson updates or creates a people.Person
func (cli *commandLine) addPerson(name, email, dept, role, roll, pwd string) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)

	p, err := cli.personRepo.GetPerson(ctx, people.GetFilter{Email: email})
	if err != nil {
		if err != people.ErrNotFound {
			return err
		}
		p = people.Person{Email: email}
	}
	p.FullName = core.CollapseSpaces(name)
	p.Role = role
	p.Department = core.CleanString(dept)
	if roll != "" {
		p.RollNumber = core.CleanString(roll)
	}
	if err := p.SetPassword(pwd); err != nil {
		return err
	}

	if p.ID == "" {
		_, err = cli.personRepo.CreatePerson(ctx, p)
	} else {
		_, err = cli.personRepo.UpdatePerson(ctx, p)
	}
	return err
}
