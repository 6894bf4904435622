package shaders

import (
	_ "embed"
)

//go:embed instanced.wgsl
var InstancedWGSL string
