package page

import (
	"fmt"
	"html/template"
	"os"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Icon Catalog</title>
<style>
body { font-family: sans-serif; margin: 2rem; background: #fafafa; }
h2 { border-bottom: 1px solid #ddd; padding-bottom: .3rem; }
h2 img { width: 28px; height: 28px; vertical-align: middle; margin-right: .5rem; }
ul { list-style: none; padding: 0; display: grid; grid-template-columns: repeat(auto-fill, minmax(180px, 1fr)); gap: .5rem; }
li { background: #fff; border: 1px solid #eee; border-radius: 6px; padding: .5rem; text-align: center; font-size: .8rem; }
li img { width: 48px; height: 48px; display: block; margin: 0 auto .3rem; }
</style>
</head>
<body>
<h1>Icon Catalog</h1>
{{range .}}<section>
<h2><img src="{{.Tile.Path}}" alt="">{{.Name}}</h2>
<ul>
{{range .Icons}}<li><img src="{{.Path}}" alt="{{.Name}}" loading="lazy">{{.Name}}</li>
{{end}}</ul>
</section>
{{end}}</body>
</html>
`))

// WriteHTML renders the browsing page for sections into outPath.
func WriteHTML(sections []Section, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	if err := indexTmpl.Execute(f, sections); err != nil {
		f.Close()
		return fmt.Errorf("render page: %w", err)
	}
	return f.Close()
}
