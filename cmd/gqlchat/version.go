package main

import (
	"context"
	"fmt"

	"github.com/a-h/gqlchat"
)

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(gqlchat.Version)
	return nil
}
