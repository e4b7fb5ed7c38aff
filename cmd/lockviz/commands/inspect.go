package commands

import (
	"strings"

	"github.com/octogonz/pnpm-lockfile-visualizer/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print where the lockfile is and how large it is",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settings(cmd)
			if err != nil {
				return err
			}
			return c.app.Summary(cmd.Context(), options(s))
		},
	}
}

func (c *CLI) newImportersCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "importers",
		Aliases: []string{"projects"},
		Short:   "List workspace projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settings(cmd)
			if err != nil {
				return err
			}
			return c.app.Importers(cmd.Context(), options(s))
		},
	}
}

func (c *CLI) newPackagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packages",
		Short: "List resolved package versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settings(cmd)
			if err != nil {
				return err
			}
			filter, _ := cmd.Flags().GetString("filter")
			return c.app.Packages(cmd.Context(), options(s), app.PackagesOptions{Filter: filter})
		},
	}
	cmd.Flags().StringP("filter", "f", "", "Only list packages whose name matches this glob, such as '@types/*'")
	return cmd
}

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <entry>",
		Short: "Show an entry with its dependencies and referencers",
		Long: "Show an entry with its dependencies and referencers.\n\n" +
			"The entry may be given as an identifier (/react/17.0.2, project:./apps/web),\n" +
			"a lockfile key, display text (\"react 17.0.2\") or the line number of its key.\n" +
			"Only the line of an importer or package key matches; lines of the dependencies\n" +
			"listed under an entry do not.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings(cmd)
			if err != nil {
				return err
			}
			return c.app.Show(cmd.Context(), options(s), strings.Join(args, " "))
		},
	}
}

func (c *CLI) newWhyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "why <entry>",
		Short: "Explain which projects pull an entry into the lockfile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			return c.app.Why(cmd.Context(), options(s), strings.Join(args, " "), app.WhyOptions{Limit: limit})
		},
	}
	cmd.Flags().IntP("limit", "n", 0, "Maximum number of chains to print (0 for all)")
	return cmd
}
