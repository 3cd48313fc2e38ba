package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/assist-core/internal/infrastructure/cli"
	configinfra "github.com/doeshing/assist-core/internal/infrastructure/config"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{
		Verbose:    isVerbose(),
		ConfigPath: os.Getenv(configinfra.EnvConfigPath),
	}

	root, cleanup, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	err = root.ExecuteContext(ctx)
	if closeErr := cleanup(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("ASSIST_DEBUG"), "1") || strings.EqualFold(os.Getenv("ASSIST_DEBUG"), "true")
}
