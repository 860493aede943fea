package assets

// Names of the bundled assets.
const (
	StylesheetName = "styles.sass"
	FaviconName    = "favicon.png"
	ScriptName     = "script.js"
)

// Loader defines the contract for loading asset files by name.
type Loader interface {
	// Load returns the content of the named file.
	// Returns ErrAssetNotFound if the asset doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	Load(name string) ([]byte, error)
}
