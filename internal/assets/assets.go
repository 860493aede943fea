package assets

import "fmt"

// Bundle holds the loaded asset files.
type Bundle struct {
	Stylesheet string // Sass source, before theme injection
	Favicon    []byte
	Script     []byte

	// Overridden lists the assets read from a custom directory instead of
	// the embedded copies.
	Overridden []string

	// Dir is the custom asset directory, empty when only embedded assets
	// are available. Stylesheet partials next to an override live here.
	Dir string
}

// dirLoader is implemented by loaders backed by a directory.
type dirLoader interface {
	BasePath() string
}

// sourceLoader is implemented by loaders that can tell where an asset came
// from, such as Resolver.
type sourceLoader interface {
	LoadWithSource(name string) ([]byte, bool, error)
}

// LoadBundle reads every asset through loader.
func LoadBundle(loader Loader) (*Bundle, error) {
	b := &Bundle{}
	if dl, ok := loader.(dirLoader); ok {
		b.Dir = dl.BasePath()
	}
	load := func(name string) ([]byte, error) {
		sl, ok := loader.(sourceLoader)
		if !ok {
			return loader.Load(name)
		}
		content, custom, err := sl.LoadWithSource(name)
		if err == nil && custom {
			b.Overridden = append(b.Overridden, name)
		}
		return content, err
	}

	stylesheet, err := load(StylesheetName)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", StylesheetName, err)
	}
	favicon, err := load(FaviconName)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", FaviconName, err)
	}
	script, err := load(ScriptName)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", ScriptName, err)
	}

	b.Stylesheet = string(stylesheet)
	b.Favicon = favicon
	b.Script = script
	return b, nil
}
