// Package assets embeds the default word list used when no file or database
// is configured.
package assets

import "embed"

// WordsFile is the name of the default list inside FS.
const WordsFile = "words.txt"

//go:embed words.txt
var FS embed.FS
