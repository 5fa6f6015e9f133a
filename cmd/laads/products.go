package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
)

func newProductsCommand() *cli.Command {
	return &cli.Command{
		Name:   "products",
		Usage:  "List the catalog's available products",
		Action: productsAction,
	}
}

func productsAction(ctx context.Context, cmd *cli.Command) error {
	log := setupLogger(cmd)

	catalog, err := newCatalog(cmd, log)
	if err != nil {
		return err
	}

	products, err := catalog.ListProducts(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\n", p.Name, p.Description)
	}
	return w.Flush()
}
