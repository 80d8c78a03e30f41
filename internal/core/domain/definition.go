package domain

// Definition is the publish-time description of every bundle, read from
// bundles.yaml.
type Definition struct {
	Bundles []BundleDefinition
}

// BundleDefinition describes one bundle before it is packed.
type BundleDefinition struct {
	// Name is the base name; the content hash is appended when packed.
	Name         string
	Dependencies []string
	// Assets lists flat resource files relative to the bundle's source
	// directory. When empty and no prefabs are given, every file in that
	// directory is packed.
	Assets  []string
	Prefabs []PrefabDefinition
	// Embedded marks the bundle for the embedded tree shipped with the client.
	Embedded bool
}

// PrefabDefinition describes an instantiable asset assembled from files.
type PrefabDefinition struct {
	// Asset is the <name>.<extension> display name.
	Asset string
	// Data is the file holding the prefab root data.
	Data       string
	Components []ComponentDefinition
}

// ComponentDefinition names one component file of a prefab.
type ComponentDefinition struct {
	Name string
	File string
}

// SourceDir returns the bundle's source directory relative to the source
// root: the base name split on '_' into folders.
func (b BundleDefinition) SourceDir() string {
	return SourceDir(b.Name)
}
