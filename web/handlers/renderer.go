package handlers

import (
	"html/template"
	"io/fs"
	"net/http"
)

type Renderer interface {
	Templates() *template.Template
	Handlers() map[string]func(w http.ResponseWriter, r *http.Request)
	Data() map[string]interface{}
	Static() fs.FS
}
