package templates

import (
	_ "embed"
	"html/template"
)

//go:embed index.html
var indexHTML string

// Index is the single-page form. Execute it with the name "index".
var Index = template.Must(template.New("index").Parse(indexHTML))
