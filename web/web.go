// Package web embeds the browser front-ends of both services.
package web

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed recipe diary
var files embed.FS

// Recipe returns the fridge recipe front-end rooted at its index.html.
func Recipe() fs.FS { return sub("recipe") }

// Diary returns the empathy diary front-end.
func Diary() fs.FS { return sub("diary") }

// Static prefers an on-disk front-end directory over the embedded one.
func Static(dir string, embedded fs.FS) fs.FS {
	if dir == "" {
		return embedded
	}
	return os.DirFS(dir)
}

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return f
}
