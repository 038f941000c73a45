package cli

import (
	"errors"
	"os"

	"github.com/kstenerud/repoview/internal/gitinfo"
	"github.com/spf13/cobra"
)

// EnvRepo is the environment variable used as the default repository path.
const EnvRepo = "REPOVIEW_REPO"

// resolveRepoPath extracts the repository path from positional args,
// falling back to REPOVIEW_REPO and then the working directory.
func resolveRepoPath(_ *cobra.Command, args []string) string {
	if len(args) >= 1 && args[0] != "" {
		return args[0]
	}
	if envPath := os.Getenv(EnvRepo); envPath != "" {
		return envPath
	}
	return "."
}

// openRepo opens the repository named by args. A path outside any
// repository is a usage error.
func openRepo(cmd *cobra.Command, args []string) (*gitinfo.Repo, error) {
	path := resolveRepoPath(cmd, args)
	repo, err := gitinfo.Open(path)
	if err != nil {
		if errors.Is(err, gitinfo.ErrNotRepository) {
			return nil, NewUsageError("%s (or set %s)", err, EnvRepo)
		}
		return nil, err
	}
	return repo, nil
}
