package levels

import "embed"

//go:embed *.json
var LevelsFS embed.FS
