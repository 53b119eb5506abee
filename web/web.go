package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed static
var static embed.FS

var funcs = template.FuncMap{
	// side 为子模板打包参数
	"side": func(side any, index int, position string, scale []int) map[string]any {
		return map[string]any{
			"Side":     side,
			"Index":    index,
			"Position": position,
			"Scale":    scale,
		}
	},
}

// Templates 解析后的页面模板
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templates, "templates/*.html")
}

// Static /static 下的脚本和样式
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
