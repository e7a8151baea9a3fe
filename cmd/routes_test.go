package cmd

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/landing/router"
)

func TestFormatRoutes(t *testing.T) {
	enabled := color.Disable()
	defer func() { color.Enable = enabled }()

	out := formatRoutes([]router.Route{
		{Method: http.MethodGet, Pattern: "/", Name: "index"},
		{Method: http.MethodGet, Pattern: "/health", Name: "health"},
	})

	expected := "METHOD  PATTERN  NAME\n" +
		"GET     /        index\n" +
		"GET     /health  health\n"

	assert.Equal(t, expected, out)
}

func TestRoutesCommand(t *testing.T) {
	enabled := color.Disable()
	defer func() { color.Enable = enabled }()

	var out bytes.Buffer

	writer := rootApp.Writer
	rootApp.Writer = &out
	defer func() { rootApp.Writer = writer }()

	err := rootApp.RunContext(context.Background(), []string{appName, "--log-level", "error", "routes"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "GET     /        index")
	assert.Contains(t, out.String(), "/health")
}
