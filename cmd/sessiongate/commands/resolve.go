package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/marmos91/sessiongate/internal/cli/output"
	"github.com/marmos91/sessiongate/pkg/config"
	"github.com/marmos91/sessiongate/pkg/restriction"
)

var (
	resolveAttrs     []string
	resolveAttrsFile string
	resolveGroups    string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the effective restrictions for a user",
	Long: `Resolve the effective restrictions for a hypothetical user, combining
the user's own attributes with the restricted groups declared in the
configuration. Useful for verifying a deployment before rollout.

Examples:
  # A user with an explicit attribute
  sessiongate resolve --attr addl-restrict-force-read-only=true

  # A member of configured restricted groups
  sessiongate resolve --groups "auditors,kiosk-users"

  # Attributes from a YAML file (a flat key: value map)
  sessiongate resolve --attrs-file user.yaml --groups auditors

  # Both sources combine by union
  sessiongate resolve --attr addl-restrict-force-read-only=true --groups auditors`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringArrayVar(&resolveAttrs, "attr", nil, "user attribute as key=value (repeatable)")
	resolveCmd.Flags().StringVar(&resolveAttrsFile, "attrs-file", "", "YAML file with user attributes (flat key: value map)")
	resolveCmd.Flags().StringVar(&resolveGroups, "groups", "", "comma-separated group memberships")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}

	userAttrs := make(map[string]string, len(resolveAttrs))
	if resolveAttrsFile != "" {
		data, err := os.ReadFile(resolveAttrsFile)
		if err != nil {
			return fmt.Errorf("reading attributes file: %w", err)
		}
		if err := yaml.Unmarshal(data, &userAttrs); err != nil {
			return fmt.Errorf("parsing attributes file %s: %w", resolveAttrsFile, err)
		}
	}
	// --attr flags override file entries.
	for _, a := range resolveAttrs {
		key, value, found := strings.Cut(a, "=")
		if !found {
			return fmt.Errorf("invalid attribute %q: expected key=value", a)
		}
		userAttrs[key] = value
	}

	directory := restriction.NewStaticDirectory(
		cfg.Groups.ReadOnlyGroups(),
		cfg.Groups.DisallowConcurrentGroups(),
	)
	resolver := restriction.NewResolver(directory, nil)

	memberOf := config.ParseGroupList(resolveGroups)
	effective := resolver.Resolve(context.Background(), userAttrs, memberOf)

	if len(effective) == 0 {
		fmt.Println("No restrictions apply.")
		return nil
	}

	rows := make([][]string, 0, len(effective))
	for _, r := range effective.List() {
		rows = append(rows, []string{r.AttributeName(), r.Description()})
	}
	output.Table(os.Stdout, []string{"Restriction", "Description"}, rows)
	return nil
}
