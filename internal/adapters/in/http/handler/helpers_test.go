// internal/adapters/in/http/handler/helpers_test.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/usecase"
	listingdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/listing"
	orderdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/order"
	storedom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/store"
)

func TestPathSegment(t *testing.T) {
	assert.Equal(t, "s1", pathSegment("/stores/s1", "/stores/", 0))
	assert.Equal(t, "s1", pathSegment("/stores/s1/reviews", "/stores/", 0))
	assert.Equal(t, "reviews", pathSegment("/stores/s1/reviews", "/stores/", 1))
	assert.Equal(t, "s1", pathSegment("/stores/s1/", "/stores/", 0))

	// prefix not present
	assert.Equal(t, "", pathSegment("/orders/o1", "/stores/", 0))
	// index out of range
	assert.Equal(t, "", pathSegment("/stores/s1", "/stores/", 3))
}

func TestParseStatuses(t *testing.T) {
	got, ok := parseStatuses("")
	require.True(t, ok)
	assert.Nil(t, got)

	got, ok = parseStatuses("In Progress")
	require.True(t, ok)
	assert.Equal(t, []orderdom.Status{orderdom.StatusInProgress}, got)

	got, ok = parseStatuses("in-progress")
	require.True(t, ok)
	assert.Equal(t, []orderdom.Status{orderdom.StatusInProgress}, got)

	got, ok = parseStatuses("COMPLETED")
	require.True(t, ok)
	assert.Equal(t, []orderdom.Status{orderdom.StatusCompleted}, got)

	_, ok = parseStatuses("cancelled")
	assert.False(t, ok)
}

func TestWriteDomainErrMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{storedom.ErrNotFound, 404},
		{listingdom.ErrNotFound, 404},
		{usecase.ErrStoreNotOwner, 403},
		{orderdom.ErrNotParticipant, 403},
		{orderdom.ErrAlreadyCompleted, 409},
		{usecase.ErrInsufficientStock, 409},
		{usecase.ErrCartEmpty, 400},
		{storedom.ErrInvalidHours, 400},
		{errors.New("firestore exploded"), 500},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeDomainErr(rec, tc.err)
		assert.Equal(t, tc.code, rec.Code, "err=%v", tc.err)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	}

	// the fallback must not leak internals to the client
	rec := httptest.NewRecorder()
	writeDomainErr(rec, errors.New("firestore exploded"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body["error"])
}
