package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/parcel/internal/app"
	_ "go.trai.ch/parcel/internal/wiring"
)

// TestGraftDependencies ensures that every node declaring a dependency
// actually uses it, and every used dependency is declared.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers the dependency ID from the package name of
	// the type used in Dep[T]. Most nodes here provide interfaces from the
	// shared ports package, which it cannot tell apart.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}

// TestGraftResolvesComponents builds the full graph from an empty project.
func TestGraftResolvesComponents(t *testing.T) {
	t.Chdir(t.TempDir())

	components, _, err := graft.ExecuteFor[*app.Components](t.Context())
	require.NoError(t, err)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
	require.Equal(t, "default", components.App.Config().Platform)
}
