package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/**/*.html static/**/*
var assets embed.FS

// Templates exposes layouts, partials and pages rooted at templates/.
func Templates() fs.FS {
	return mustSub("templates")
}

// Static exposes the asset tree served under /static/.
func Static() fs.FS {
	return mustSub("static")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(assets, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
