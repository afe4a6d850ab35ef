// AngelaMos | 2026
// keys.go

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/articlehub/internal/auth"
)

func newKeysCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate the ES256 signing key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.loadConfig()
			if err != nil {
				return err
			}

			privatePath := cfg.JWT.PrivateKeyPath
			publicPath := cfg.JWT.PublicKeyPath

			if !force {
				if _, statErr := os.Stat(privatePath); statErr == nil {
					return fmt.Errorf(
						"%s already exists, pass --force to overwrite",
						privatePath,
					)
				}
			}

			for _, dir := range []string{
				filepath.Dir(privatePath),
				filepath.Dir(publicPath),
			} {
				if mkErr := os.MkdirAll(dir, 0o700); mkErr != nil {
					return fmt.Errorf("create key dir: %w", mkErr)
				}
			}

			if err := auth.GenerateKeyPair(privatePath, publicPath); err != nil {
				return err
			}

			logger.Info("signing keys written",
				"private_key", privatePath,
				"public_key", publicPath,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing keys")

	return cmd
}
