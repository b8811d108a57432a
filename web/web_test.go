package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	for _, name := range []string{"index.html", "app.js", "style.css"} {
		data, err := fs.ReadFile(Static(), name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}

	index, err := fs.ReadFile(Static(), "index.html")
	require.NoError(t, err)
	for _, id := range []string{"scenarioSelect", "lensSelect", "loadScenarioBtn", "network", "tabSummary", "tabNode", "tabScenarioLens"} {
		assert.Contains(t, string(index), `id="`+id+`"`)
	}
}
