package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/example/hamper-shop/internal/catalog"
	"github.com/example/hamper-shop/internal/message"
	"github.com/spf13/cobra"
)

var catalogTables = []string{"occasions", "vibes", "packaging", "contents", "products"}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "catalog [occasions|vibes|packaging|contents|products]",
		Short:     "Print the catalog tables",
		Long:      `Prints one catalog table, or all of them when no table is named.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: catalogTables,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := catalogTables
			if len(args) == 1 {
				names = args
			}
			out := cmd.OutOrStdout()
			for i, name := range names {
				if i > 0 {
					fmt.Fprintln(out)
				}
				writeCatalogTable(out, a.cat, name)
			}
			return nil
		},
	}
}

func writeCatalogTable(w io.Writer, c *catalog.Catalog, name string) {
	var headers []string
	var rows [][]string

	switch name {
	case "occasions":
		headers = []string{"ID", "NAME", "DESCRIPTION", "STYLE"}
		for _, o := range c.Occasions {
			rows = append(rows, []string{o.ID, o.Name, o.Description, catalog.StyleToken(catalog.KindOccasion, o.ID)})
		}
	case "vibes":
		headers = []string{"ID", "NAME", "DESCRIPTION", "STYLE"}
		for _, v := range c.Vibes {
			rows = append(rows, []string{v.ID, v.Name, v.Description, catalog.StyleToken(catalog.KindVibe, v.ID)})
		}
	case "packaging":
		headers = []string{"ID", "NAME", "PRICE", "STYLE"}
		for _, p := range c.Packaging {
			rows = append(rows, []string{p.ID, p.Name, message.FormatRupees(p.Price), catalog.StyleToken(catalog.KindPackaging, p.ID)})
		}
	case "contents":
		headers = []string{"ID", "NAME", "CATEGORY", "PRICE", "STYLE"}
		for _, group := range c.ContentsByCategory() {
			style := catalog.StyleToken(catalog.KindContentCategory, group.Category)
			for _, item := range group.Items {
				rows = append(rows, []string{item.ID, item.Name, group.Category, message.FormatRupees(item.Price), style})
			}
		}
	case "products":
		headers = []string{"ID", "NAME", "CATEGORY", "PRICE", "STYLE"}
		for _, p := range c.Products {
			rows = append(rows, []string{p.ID, p.Name, p.Category, p.Price, catalog.StyleToken(catalog.KindProductCategory, p.Category)})
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, name)
	fmt.Fprintln(w, t.String())
}
