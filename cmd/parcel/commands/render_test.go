package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/muesli/termenv"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"go.trai.ch/parcel/internal/app"
	"go.trai.ch/parcel/internal/core/domain"
)

func plain(buf *bytes.Buffer) *termenv.Output {
	return termenv.NewOutput(buf, termenv.WithProfile(termenv.Ascii))
}

func sampleReport(t *testing.T) *app.InspectReport {
	t.Helper()
	c := domain.NewCatalog("ab12")
	require.NoError(t, c.AddBundle(domain.Bundle{Name: "Shared~01", Origin: domain.OriginCached}, []string{"Font.ttf"}))
	require.NoError(t, c.AddBundle(domain.Bundle{Name: "UI~02", Dependencies: []string{"Shared~01"}}, []string{"Logo.png"}))

	return &app.InspectReport{
		Source:  "persisted",
		Version: domain.CatalogVersion{ContentHash: "ab12", BuildID: 3},
		Catalog: c,
		Closures: []domain.DependencyClosure{
			{Root: "Shared~01", Bundles: []string{"Shared~01"}},
			{Root: "UI~02", Bundles: []string{"Shared~01", "UI~02"}},
		},
		Missing: map[string][]string{"UI~02": {"UI~02"}},
	}
}

func TestRenderInspect(t *testing.T) {
	var buf bytes.Buffer
	renderInspect(plain(&buf), sampleReport(t))

	g := goldie.New(t)
	g.Assert(t, "inspect", buf.Bytes())
}

func TestRenderFetch(t *testing.T) {
	results := []app.FetchResult{
		{
			Name: "Logo",
			Asset: &domain.LoadedAsset{
				Asset:    domain.Asset{Name: "Logo", BundleName: "UI~02", Extension: "png"},
				Strategy: domain.ResolveResource(),
				Resource: &domain.Item{Name: "Logo", Extension: "png", Data: []byte("logo")},
			},
		},
		{
			Name: "Hero",
			Asset: &domain.LoadedAsset{
				Asset:     domain.Asset{Name: "Hero", BundleName: "Units~03", Extension: "prefab"},
				Strategy:  domain.ResolveComponent("Mesh"),
				Instance:  &domain.Instance{ID: "inst-1", Prefab: "Hero"},
				Component: &domain.Component{Name: "Mesh", Data: []byte("mesh")},
			},
		},
		{Name: "Missing", Err: errors.New("not found in catalog")},
	}

	var buf bytes.Buffer
	renderFetch(plain(&buf), results)

	g := goldie.New(t)
	g.Assert(t, "fetch", buf.Bytes())
}

func TestInspectJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, inspectJSON(sampleReport(t))))

	g := goldie.New(t)
	g.Assert(t, "inspect_json", buf.Bytes())
}
