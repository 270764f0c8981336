package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vidyalabs/vidya/storage/spreadsheet"
)

// importRoster parses a roster sheet and reconciles it into the DB,
// printing the commit summary.
func (cli *commandLine) importRoster(path, dept string) error {
	grid, err := spreadsheet.ReadFile(path)
	if err != nil {
		return err
	}

	res, err := cli.importer.Preview(grid, path)
	if err != nil {
		return err
	}
	fmt.Printf("parsed %s layout: %d subjects, %d students, %d faculty\n",
		res.Layout, len(res.Subjects), len(res.Students), len(res.Faculty))

	summary, err := cli.importer.Commit(context.Background(), res, dept)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
