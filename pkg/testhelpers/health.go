package testhelpers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
)

// CheckHealth performs a single probe request against handler.
func CheckHealth(handler http.Handler, path string) error {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if w.Code >= http.StatusBadRequest {
		return fmt.Errorf("unhealthy: %d", w.Code)
	}
	return nil
}
