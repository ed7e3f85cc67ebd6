// Package web embeds the built drawing studio frontend so the server
// ships as a single binary for air-gapped deployment.
package web

import (
	"embed"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed dist/*
var distFiles embed.FS

// distFS returns the embedded filesystem rooted at the dist folder.
func distFS() (fs.FS, error) {
	return fs.Sub(distFiles, "dist")
}

// HasEmbeddedFiles reports whether a built frontend is compiled in.
// A dist folder without an index.html counts as no frontend.
func HasEmbeddedFiles() bool {
	entries, err := distFiles.ReadDir("dist")
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.Name() == "index.html" {
			return true
		}
	}
	return false
}

// RegisterStaticRoutes serves the embedded studio under a catch-all
// GET route. API routes must be registered first so they win the
// route match; anything the dist folder does not contain falls back
// to the app shell, which lets the frontend router own deep links
// like /drawing/pulley.
func RegisterStaticRoutes(e *echo.Echo) error {
	staticFS, err := distFS()
	if err != nil {
		return err
	}

	fileServer := http.FileServer(http.FS(staticFS))

	e.GET("/*", func(c echo.Context) error {
		requestPath := path.Clean(c.Request().URL.Path)
		if requestPath == "." {
			requestPath = "/"
		}

		file, err := staticFS.Open(strings.TrimPrefix(requestPath, "/"))
		if err != nil {
			return serveAppShell(c, staticFS)
		}
		defer file.Close()

		stat, err := file.Stat()
		if err != nil {
			return serveAppShell(c, staticFS)
		}

		if stat.IsDir() {
			indexPath := path.Join(requestPath, "index.html")
			indexFile, err := staticFS.Open(strings.TrimPrefix(indexPath, "/"))
			if err != nil {
				return serveAppShell(c, staticFS)
			}
			indexFile.Close()
		}

		fileServer.ServeHTTP(c.Response(), c.Request())
		return nil
	})

	return nil
}

// serveAppShell serves the root index.html so client-side routing can
// resolve the path.
func serveAppShell(c echo.Context, staticFS fs.FS) error {
	indexFile, err := staticFS.Open("index.html")
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "index.html not found")
	}
	defer indexFile.Close()

	content, err := io.ReadAll(indexFile)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read index.html")
	}

	return c.HTMLBlob(http.StatusOK, content)
}
