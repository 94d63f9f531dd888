package convert

import (
	"bytes"
	"fmt"
	"html/template"
)

// pageTemplate wraps a rendered body into a complete document.
//
//nolint:gochecknoglobals // parsed once, read-only
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
.{{.BlockClass}} { padding: 0.5rem 1rem; margin-bottom: 1rem; border-left: 0.25em solid #0969da; }
.{{.BlockClass}} > :last-child { margin-bottom: 0; }
.{{.TitleClass}} { display: flex; align-items: center; gap: 0.5rem; font-weight: 500; }
.{{.TitleClass}} .icon { display: inline-flex; }
</style>
</head>
<body>
<article>
{{.Body}}</article>
</body>
</html>
`))

type pageData struct {
	Lang       string
	Title      string
	BlockClass string
	TitleClass string
	Body       template.HTML
}

// page renders body inside the standalone template. The body is already
// HTML produced by the renderer and is inserted unescaped.
func page(title, lang string, opts Options, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Lang:       lang,
		Title:      title,
		BlockClass: opts.Admonitions.BlockCSSClass,
		TitleClass: opts.Admonitions.TitleCSSClass,
		//nolint:gosec // body comes from the renderer, which escapes document text
		Body: template.HTML(body),
	})
	if err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}
	return buf.Bytes(), nil
}
