package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifier(t *testing.T) {
	project := domain.InternIdentifier("project:./apps/web")
	pkg := domain.InternIdentifier("/react/17.0.2")

	assert.Equal(t, project, domain.InternIdentifier("project:./apps/web"))
	assert.NotEqual(t, project, pkg)
	assert.True(t, project.IsProject())
	assert.False(t, pkg.IsProject())

	var zero domain.Identifier
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
	assert.False(t, pkg.IsZero())

	out, err := json.Marshal(map[string]domain.Identifier{"target": pkg})
	require.NoError(t, err)
	assert.JSONEq(t, `{"target":"/react/17.0.2"}`, string(out))
}
