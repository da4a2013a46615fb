package main

import (
	"fmt"

	"delivrya/catalog"
	"delivrya/i18n"

	"github.com/urfave/cli/v2"
)

func restaurantsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:    "restaurants",
		Aliases: []string{"ls"},
		Usage:   "list restaurants, with the home screen filters",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Usage: "category name or id"},
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}},
			&cli.StringSliceFlag{Name: "cuisine", Usage: "traditional, modern, fusion, street, pastry"},
			&cli.StringFlag{Name: "price", Usage: "$, $$ or $$$"},
			&cli.Float64Flag{Name: "min-rating"},
			&cli.BoolFlag{Name: "free-delivery"},
		},
		Action: func(c *cli.Context) error {
			rs := catalog.Restaurants(catalog.Filter{
				Category:     c.String("category"),
				Query:        c.String("query"),
				Cuisines:     c.StringSlice("cuisine"),
				PriceRange:   c.String("price"),
				MinRating:    c.Float64("min-rating"),
				FreeDelivery: c.Bool("free-delivery"),
			})
			e.printf("%s (%d)\n", e.locale.T("nearbyRestaurants"), len(rs))
			for _, r := range rs {
				fee := e.money(r.DeliveryFee)
				if r.FreeDelivery() {
					fee = e.locale.T("freeDelivery")
				}
				e.printf("  [%s] %s  %.1f★  %s  %s min  %s\n", r.ID, r.Name, r.Rating, r.PriceRange, r.DeliveryTime, fee)
			}
			return nil
		},
	}
}

func menuCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "menu",
		Usage:     "show a restaurant's menu",
		ArgsUsage: "<restaurant-id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			r, err := catalog.Restaurant(id)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			sections, _ := catalog.Menu(id)
			e.printf("%s, %s\n", r.Name, r.Address)
			for _, s := range sections {
				e.printf("\n%s\n", e.locale.T(s.NameKey))
				for _, d := range s.Dishes {
					popular := ""
					if d.Popular {
						popular = " (" + e.locale.T("popular") + ")"
					}
					e.printf("  [%s] %s  %s%s\n", d.ID, d.Name, e.money(d.Price), popular)
					for _, o := range d.Options {
						e.printf("      + %s  %s\n", o.Name, e.money(o.Price))
					}
				}
			}
			return nil
		},
	}
}

func searchCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "search restaurants and dishes",
		ArgsUsage: "<text>",
		Action: func(c *cli.Context) error {
			hits := catalog.Search(c.Args().First())
			if len(hits) == 0 {
				e.printf("%s: %v\n", e.locale.T("popular"), catalog.PopularTags())
				return nil
			}
			for _, h := range hits {
				e.printf("  %-10s [%s] %s  %s\n", h.Type, h.ID, h.Name, h.Info)
			}
			return nil
		},
	}
}

func translateCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "translate",
		Usage:     "resolve a translation key in the current locale",
		ArgsUsage: "<key> [name=value...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("missing key", 1)
			}
			params := i18n.Params{}
			for _, kv := range c.Args().Tail() {
				name, value, ok := cutParam(kv)
				if !ok {
					return cli.Exit(fmt.Sprintf("bad parameter %q, want name=value", kv), 1)
				}
				params[name] = value
			}
			e.printf("%s\n", e.locale.T(c.Args().First(), params))
			return nil
		},
	}
}

func settingsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "show language and theme, as applied to the web document",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "toggle-language"},
			&cli.BoolFlag{Name: "toggle-theme"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("toggle-language") {
				e.locale.Toggle()
			}
			if c.Bool("toggle-theme") {
				e.theme.Toggle()
			}
			colors := e.theme.Colors()
			e.printf("%s: %s (rtl=%t)\n", e.locale.T("language"), e.locale.Current(), e.locale.IsRTL())
			e.printf("%s: %t\n", e.locale.T("darkMode"), e.theme.IsDark())
			e.printf("document: %v\n", e.doc.Snapshot())
			e.printf("colors: text %s, background %s, primary %s\n", colors.Text, colors.Background, colors.Primary)
			return nil
		},
	}
}
