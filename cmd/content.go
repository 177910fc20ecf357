package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/stratiz/internal/ui/components"
	"github.com/abhisek/stratiz/internal/ui/theme"
)

// textWidth is the wrap width for printed content.
const textWidth = 76

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "Print every chapter in full",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pack, err := loadPack(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, s := range pack.Sections() {
			if i > 0 {
				lipgloss.Fprintln(out)
			}
			lipgloss.Fprintln(out, theme.Heading.Render(fmt.Sprintf("%d. %s", i+1, s.Title)))
			for _, p := range s.Paragraphs() {
				lipgloss.Fprintln(out)
				lipgloss.Fprintln(out, components.Wrap(p, textWidth))
			}
		}
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a one-paragraph summary of each chapter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pack, err := loadPack(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, s := range pack.Sections() {
			if i > 0 {
				lipgloss.Fprintln(out)
			}
			lipgloss.Fprintln(out, theme.Heading.Render(s.Title))
			lipgloss.Fprintln(out, components.Wrap(s.Summary(), textWidth))
		}
		return nil
	},
}

var glossaryCmd = &cobra.Command{
	Use:   "glossary [query]",
	Short: "Print glossary terms, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		pack, err := loadPack(cmd)
		if err != nil {
			return err
		}
		query := strings.Join(args, " ")
		terms := pack.SearchGlossary(query)

		out := cmd.OutOrStdout()
		if len(terms) == 0 {
			fmt.Fprintf(out, "No terms match %q.\n", query)
			return nil
		}
		for i, t := range terms {
			if i > 0 {
				lipgloss.Fprintln(out)
			}
			lipgloss.Fprintln(out, theme.Heading.Render(t.Term))
			lipgloss.Fprintln(out, lipgloss.NewStyle().PaddingLeft(2).Width(textWidth).Render(t.Definition))
		}
		return nil
	},
}
