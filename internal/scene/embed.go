package scene

import _ "embed"

//go:embed default.yaml
var defaultScene []byte
