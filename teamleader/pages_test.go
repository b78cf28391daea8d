package teamleader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedHandler serves fixed page sizes in order, generating sequential
// record IDs so ordering can be asserted end to end.
func pagedHandler(t *testing.T, sizes []int) http.HandlerFunc {
	t.Helper()
	nextID := 1

	return func(w http.ResponseWriter, r *http.Request) {
		pageno, err := strconv.Atoi(r.PostFormValue("pageno"))
		assert.NoError(t, err)
		assert.Equal(t, "100", r.PostFormValue("amount"))

		size := 0
		if pageno < len(sizes) {
			size = sizes[pageno]
		}

		page := make([]Contact, 0, size)
		for range size {
			page = append(page, Contact{ID: nextID, Email: fmt.Sprintf("c%d@example.com", nextID)})
			nextID++
		}
		json.NewEncoder(w).Encode(page)
	}
}

func TestPaginationTermination(t *testing.T) {
	client, bodies := newTestClient(t, pagedHandler(t, []int{100, 100, 37}))

	contacts, err := client.AllContacts(context.Background(), ContactQuery{})
	require.NoError(t, err)

	assert.Len(t, contacts, 237)
	require.Len(t, *bodies, 3, "a short page is the sole termination signal")
	for i, form := range *bodies {
		assert.Equal(t, strconv.Itoa(i), form.Get("pageno"))
	}

	// Records arrive in page order.
	for i, contact := range contacts {
		assert.Equal(t, i+1, contact.ID)
	}
}

func TestPaginationFullPageBoundary(t *testing.T) {
	// A page of exactly the page size cannot be distinguished from a
	// partial result, so the empty next page is still fetched.
	client, bodies := newTestClient(t, pagedHandler(t, []int{100, 0}))

	contacts, err := client.AllContacts(context.Background(), ContactQuery{})
	require.NoError(t, err)

	assert.Len(t, contacts, 100)
	assert.Len(t, *bodies, 2)
}

func TestPaginationSinglePartialPage(t *testing.T) {
	client, bodies := newTestClient(t, pagedHandler(t, []int{3}))

	contacts, err := client.AllContacts(context.Background(), ContactQuery{})
	require.NoError(t, err)

	assert.Len(t, contacts, 3)
	assert.Len(t, *bodies, 1)
}

func TestPaginationEmptyResult(t *testing.T) {
	client, bodies := newTestClient(t, pagedHandler(t, nil))

	contacts, err := client.AllContacts(context.Background(), ContactQuery{})
	require.NoError(t, err)

	assert.Empty(t, contacts)
	assert.Len(t, *bodies, 1)
}

func TestPaginationLazyBreak(t *testing.T) {
	client, bodies := newTestClient(t, pagedHandler(t, []int{100, 100, 37}))

	seen := 0
	for _, err := range client.GetContacts(context.Background(), ContactQuery{}) {
		require.NoError(t, err)
		seen++
		if seen == 10 {
			break
		}
	}

	assert.Equal(t, 10, seen)
	assert.Len(t, *bodies, 1, "breaking out must not fetch further pages")
}

func TestPaginationErrorStopsSequence(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"reason":"expired"}`))
			return
		}
		pagedHandler(t, []int{100, 100})(w, r)
	})

	var lastErr error
	seen := 0
	for _, err := range client.GetContacts(context.Background(), ContactQuery{}) {
		if err != nil {
			lastErr = err
			break
		}
		seen++
	}

	assert.Equal(t, 100, seen)
	require.ErrorIs(t, lastErr, ErrUnauthorized)
}

func TestPaginationFreshCursorPerCall(t *testing.T) {
	client, bodies := newTestClient(t, pagedHandler(t, []int{2}))

	_, err := client.AllContacts(context.Background(), ContactQuery{})
	require.NoError(t, err)
	_, err = client.AllContacts(context.Background(), ContactQuery{})
	require.NoError(t, err)

	require.Len(t, *bodies, 2)
	assert.Equal(t, "0", (*bodies)[0].Get("pageno"))
	assert.Equal(t, "0", (*bodies)[1].Get("pageno"), "each top-level call restarts at page 0")
}

func TestPaginationCarriesFilterFields(t *testing.T) {
	client, bodies := newTestClient(t, pagedHandler(t, []int{1}))

	_, err := client.AllContacts(context.Background(), ContactQuery{
		Query:          "jane",
		Tag:            "vip",
		SegmentID:      4,
		CustomFieldIDs: []int{7, 12},
	})
	require.NoError(t, err)

	require.Len(t, *bodies, 1)
	form := (*bodies)[0]
	assert.Equal(t, "jane", form.Get("searchby"))
	assert.Equal(t, "vip", form.Get("filter_by_tag"))
	assert.Equal(t, "4", form.Get("segment_id"))
	assert.Equal(t, "7,12", form.Get("selected_customfields"))
}
