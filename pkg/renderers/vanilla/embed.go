package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	StylesheetName = "promoform.css"
	ScriptName     = "promoform.js"
)

// TemplatesFS exposes the embedded page templates rooted at the template
// directory.
func TemplatesFS() fs.FS {
	return mustSub(embeddedTemplates, "templates")
}

// AssetsFS exposes the embedded CSS/JS bundle so callers can serve it over
// HTTP.
func AssetsFS() fs.FS {
	return mustSub(embeddedAssets, "assets")
}

func mustSub(files embed.FS, dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		return files
	}
	return sub
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
