package catalog

import _ "embed"

//go:embed seed.json
var seedCatalog []byte

// SeedCatalog returns the embedded default catalog in JSON format. It is used
// to populate an empty database on first start.
func SeedCatalog() []byte {
	return seedCatalog
}
