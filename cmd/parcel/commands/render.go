package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"go.trai.ch/parcel/internal/app"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/ui/style"
)

func paint(out *termenv.Output, s string, c lipgloss.Color) termenv.Style {
	return out.String(s).Foreground(out.Color(string(c)))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderInspect(out *termenv.Output, r *app.InspectReport) {
	header := "catalog"
	if r.Version.ContentHash != "" {
		header = fmt.Sprintf("catalog %s build %d", r.Version.ContentHash, r.Version.BuildID)
	}
	_, _ = fmt.Fprintf(out, "%s (%s)\n", out.String(header).Bold(), r.Source)

	_, _ = fmt.Fprintf(out, "\nbundles (%d)\n", r.Catalog.BundleCount())
	for b := range r.Catalog.Bundles() {
		line := fmt.Sprintf("  %s %s %s", paint(out, style.OriginIcon(b.Origin), style.OriginColor(b.Origin)), b.Name, paint(out, b.Origin.String(), style.Slate))
		if len(b.Dependencies) > 0 {
			line += fmt.Sprintf(" %s %s", style.Arrow, strings.Join(b.Dependencies, ", "))
		}
		_, _ = fmt.Fprintln(out, line)
	}

	_, _ = fmt.Fprintf(out, "\nassets (%d)\n", r.Catalog.AssetCount())
	for a := range r.Catalog.Assets() {
		_, _ = fmt.Fprintf(out, "  %s %s %s\n", a.FileName(), style.Arrow, a.BundleName)
	}

	_, _ = fmt.Fprintln(out, "\nclosures")
	for _, cl := range r.Closures {
		line := fmt.Sprintf("  %s: %s", cl.Root, strings.Join(cl.Bundles, " "))
		if missing := r.Missing[cl.Root]; len(missing) > 0 {
			line += " " + paint(out, fmt.Sprintf("(download: %s)", strings.Join(missing, " ")), style.Yellow).String()
		}
		_, _ = fmt.Fprintln(out, line)
	}
}

func renderFetch(out *termenv.Output, results []app.FetchResult) {
	for _, r := range results {
		if r.Err != nil {
			_, _ = fmt.Fprintf(out, "%s %s: %v\n", paint(out, style.Cross, style.Red), r.Name, r.Err)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s %s %s\n", paint(out, style.Check, style.Green), r.Name, describe(r.Asset))
	}
}

func describe(a *domain.LoadedAsset) string {
	switch {
	case a.Component != nil:
		return fmt.Sprintf("(%s in %s, instance %s, %s)", a.Component.Name, a.Asset.FileName(), a.Instance.ID, humanize.Bytes(uint64(len(a.Component.Data))))
	case a.Instance != nil:
		return fmt.Sprintf("(%s, instance %s, %d components)", a.Asset.FileName(), a.Instance.ID, len(a.Instance.Components))
	default:
		return fmt.Sprintf("(%s, %s)", a.Asset.FileName(), humanize.Bytes(uint64(len(a.Resource.Data))))
	}
}

type fetchResultJSON struct {
	Requested string `json:"requested"`
	Asset     string `json:"asset"`
	Bundle    string `json:"bundle,omitempty"`
	Strategy  string `json:"strategy,omitempty"`
	Instance  string `json:"instance,omitempty"`
	Size      int    `json:"size,omitempty"`
	Error     string `json:"error,omitempty"`
}

func fetchJSON(results []app.FetchResult) []fetchResultJSON {
	out := make([]fetchResultJSON, 0, len(results))
	for _, r := range results {
		j := fetchResultJSON{Requested: r.Name}
		if r.Err != nil {
			j.Asset = r.Name
			j.Error = r.Err.Error()
			out = append(out, j)
			continue
		}
		j.Asset = r.Asset.Asset.Name
		j.Bundle = r.Asset.Asset.BundleName
		j.Strategy = r.Asset.Strategy.String()
		switch {
		case r.Asset.Component != nil:
			j.Instance = r.Asset.Instance.ID
			j.Size = len(r.Asset.Component.Data)
		case r.Asset.Instance != nil:
			j.Instance = r.Asset.Instance.ID
			j.Size = len(r.Asset.Instance.Data)
		default:
			j.Size = len(r.Asset.Resource.Data)
		}
		out = append(out, j)
	}
	return out
}

type bundleJSON struct {
	Name         string   `json:"name"`
	Origin       string   `json:"origin"`
	Dependencies []string `json:"dependencies,omitempty"`
	Assets       []string `json:"assets,omitempty"`
}

type closureJSON struct {
	Root     string   `json:"root"`
	Bundles  []string `json:"bundles"`
	Download []string `json:"download,omitempty"`
}

func inspectJSON(r *app.InspectReport) map[string]any {
	var bundles []bundleJSON
	for b := range r.Catalog.Bundles() {
		j := bundleJSON{Name: b.Name, Origin: b.Origin.String(), Dependencies: b.Dependencies}
		for _, a := range r.Catalog.AssetsIn(b.Name) {
			j.Assets = append(j.Assets, a.FileName())
		}
		bundles = append(bundles, j)
	}
	closures := make([]closureJSON, 0, len(r.Closures))
	for _, cl := range r.Closures {
		closures = append(closures, closureJSON{Root: cl.Root, Bundles: cl.Bundles, Download: r.Missing[cl.Root]})
	}
	return map[string]any{
		"source":   r.Source,
		"version":  r.Version,
		"bundles":  bundles,
		"closures": closures,
	}
}
