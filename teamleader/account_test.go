package teamleader

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUsers(t *testing.T) {
	client, bodies := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/getUsers.php", r.URL.Path)
		w.Write([]byte(`[{"id":1,"name":"Ruben"},{"id":2,"name":"Matteo"}]`))
	})

	users, err := client.GetUsers(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ruben", users[0].Name)
	assert.Equal(t, "0", (*bodies)[0].Get("show_inactive_users"))

	_, err = client.GetUsers(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "1", (*bodies)[1].Get("show_inactive_users"))
}

func TestGetDepartments(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/getDepartments.php", r.URL.Path)
		w.Write([]byte(`[{"id":1,"name":"Sales"}]`))
	})

	departments, err := client.GetDepartments(context.Background())
	require.NoError(t, err)
	require.Len(t, departments, 1)
	assert.Equal(t, "Sales", departments[0].Name)
}

func TestGetTags(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/getTags.php", r.URL.Path)
		w.Write([]byte(`[{"id":4,"name":"vip"}]`))
	})

	tags, err := client.GetTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "vip", tags[0].Name)
}

func TestGetSegments(t *testing.T) {
	client, bodies := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/getSegments.php", r.URL.Path)
		w.Write([]byte(`[{"id":8,"name":"Flanders"}]`))
	})

	segments, err := client.GetSegments(context.Background(), "crm_contacts")
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, "Flanders", segments[0].Name)
	assert.Equal(t, "crm_contacts", (*bodies)[0].Get("object_type"))
}

func TestGetSegmentsValidation(t *testing.T) {
	client, bodies := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := client.GetSegments(context.Background(), "crm_invoices")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = client.GetSegments(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, *bodies)
}

func TestGetBusinessTypes(t *testing.T) {
	client, bodies := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/getBusinessTypes.php", r.URL.Path)
		w.Write([]byte(`[{"id":1,"name":"NV"},{"id":2,"name":"BVBA"}]`))
	})

	names, err := client.GetBusinessTypes(context.Background(), "BE")
	require.NoError(t, err)
	assert.Equal(t, []string{"NV", "BVBA"}, names)
	assert.Equal(t, "BE", (*bodies)[0].Get("country"))
}

func TestGetBusinessTypesValidation(t *testing.T) {
	client, bodies := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := client.GetBusinessTypes(context.Background(), "ZZ")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, *bodies)
}
