package cmd

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/lambda-feedback/landing/app"
	"github.com/lambda-feedback/landing/router"
)

var (
	routesCmdDescription = `The routes command builds the application without starting
it and prints the registered routes in matching order.

It fails like the serve command would if the route table is
invalid, e.g. if two routes share a method and pattern.`
	routesCmd = &cli.Command{
		Name:        "routes",
		Usage:       "Print the registered routes.",
		Description: routesCmdDescription,
		Action:      routesAction,
	}
)

func routesAction(ctx *cli.Context) error {
	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	var r *router.Router
	if err := app.Inspect(ctx.Context, fx.Populate(&r)); err != nil {
		return err
	}

	_, err = fmt.Fprint(ctx.App.Writer, formatRoutes(r.Routes()))
	return err
}

func formatRoutes(routes []router.Route) string {
	methodWidth, patternWidth := len("METHOD"), len("PATTERN")
	for _, route := range routes {
		methodWidth = max(methodWidth, len(route.Method))
		patternWidth = max(patternWidth, len(route.Pattern))
	}

	var b strings.Builder

	b.WriteString(color.Bold.Sprintf("%-*s  %-*s  %s\n",
		methodWidth, "METHOD", patternWidth, "PATTERN", "NAME"))

	for _, route := range routes {
		b.WriteString(color.Green.Sprintf("%-*s", methodWidth, route.Method))
		b.WriteString("  ")
		b.WriteString(color.Cyan.Sprintf("%-*s", patternWidth, route.Pattern))
		b.WriteString("  ")
		b.WriteString(route.Name)
		b.WriteString("\n")
	}

	return b.String()
}

func init() {
	rootApp.Commands = append(rootApp.Commands, routesCmd)
}
