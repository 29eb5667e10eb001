package server

import (
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// staticHandler serves files under root. Paths resolving outside root are
// forbidden and the collection file is never served.
type staticHandler struct {
	root     string
	dataFile string
}

func newStaticHandler(root, dataFile string) *staticHandler {
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		absoluteRoot = filepath.Clean(root)
	}
	absoluteData, err := filepath.Abs(dataFile)
	if err != nil {
		absoluteData = filepath.Clean(dataFile)
	}
	return &staticHandler{root: absoluteRoot, dataFile: absoluteData}
}

func (h *staticHandler) ServeHTTP(w http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodGet && request.Method != http.MethodHead {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}

	requested := request.URL.EscapedPath()
	if requested == "" || requested == "/" {
		requested = "/index.html"
	}
	decoded, err := url.PathUnescape(requested)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	filePath := filepath.Join(h.root, filepath.FromSlash(decoded))
	if filePath != h.root && !strings.HasPrefix(filePath, h.root+string(filepath.Separator)) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if h.isDataFile(filePath) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType(filePath))
	w.WriteHeader(http.StatusOK)
	if request.Method == http.MethodGet {
		w.Write(data)
	}
}

// isDataFile matches the collection file and its in-flight temporary copies.
func (h *staticHandler) isDataFile(path string) bool {
	if path == h.dataFile {
		return true
	}
	return filepath.Dir(path) == filepath.Dir(h.dataFile) &&
		strings.HasPrefix(filepath.Base(path), "."+filepath.Base(h.dataFile)+".tmp-")
}

func contentType(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".html", "":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript"
	case ".json":
		return "application/json"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}
