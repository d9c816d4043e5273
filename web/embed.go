// Package web holds the embedded server-rendered templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed all:templates
var templatesFS embed.FS

// StaticFS 前端静态资源，挂 /static/
//
//go:embed all:static
var StaticFS embed.FS

var funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

// Templates 解析全部页面模板；模板名取各文件里的 define 名
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS,
		"templates/*.tmpl", "templates/*/*.tmpl"))
}
