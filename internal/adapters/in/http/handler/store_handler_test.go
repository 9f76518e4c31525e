// internal/adapters/in/http/handler/store_handler_test.go
package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/query/storefront"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/usecase"
)

func newStoreHandlerForRouting() http.Handler {
	// unconfigured usecases: dispatch decisions happen before any
	// repository call, so routing can be tested without Firestore
	return NewStoreHandler(
		usecase.NewStoreUsecase(nil, nil),
		usecase.NewReviewUsecase(nil, nil, nil),
		storefront.NewCatalogQuery(nil, nil, nil),
	)
}

func TestStoreHandler_PathDispatch(t *testing.T) {
	h := newStoreHandlerForRouting()

	cases := []struct {
		method  string
		path    string
		want404 bool
	}{
		{http.MethodGet, "/stores", false},
		{http.MethodGet, "/stores/s1", false},
		{http.MethodGet, "/stores/s1/", false},
		{http.MethodGet, "/stores/s1/reviews", false},

		// deeper paths are not routes
		{http.MethodGet, "/stores/s1/reviews/r9", true},
		{http.MethodPost, "/stores/s1/reviews/r9", true},
		{http.MethodGet, "/stores/s1/extra", true},
		{http.MethodPut, "/stores/s1/extra", true},

		{http.MethodDelete, "/stores/s1", true},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if tc.want404 {
			assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
		} else {
			assert.NotEqual(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
		}
	}
}
