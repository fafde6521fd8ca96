package main

import (
	"context"
	"log"

	"github.com/crackenhq/cracken/internal/app/bootstrap"
)

func main() {
	if err := bootstrap.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
