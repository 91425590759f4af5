package main

import (
	"context"
	"os"

	"github.com/lightbolt/backend/internal/app"
)

func main() {
	code := app.Run("lightbolt-server", func(ctx context.Context) error {
		return run(ctx)
	})
	os.Exit(code)
}
