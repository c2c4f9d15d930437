package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_SendsDocumentVariablesAndDecodesData(t *testing.T) {
	var gotBody map[string]any
	var gotMethod, gotCT string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCT = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"data":{"users":[{"id":"1","username":"ralphie"}]}}`))
	}))
	defer ts.Close()

	c := New(ts.URL)

	var out struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"users"`
	}
	err := c.Execute(context.Background(), "query { users { id username } }", nil, &out)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, "query { users { id username } }", gotBody["query"])
	require.Len(t, out.Users, 1)
	assert.Equal(t, "ralphie", out.Users[0].Username)
}

func TestExecute_VariablesArePassedThrough(t *testing.T) {
	var gotBody struct {
		Variables map[string]any `json:"variables"`
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"data":{}}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	err := c.Execute(context.Background(), "query($search: String) { listings(search: $search) { id } }",
		map[string]any{"search": "chair", "includeSold": false}, nil)
	require.NoError(t, err)

	assert.Equal(t, "chair", gotBody.Variables["search"])
	assert.Equal(t, false, gotBody.Variables["includeSold"])
}

func TestExecute_BearerHeader(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{}}`))
	}))
	defer ts.Close()

	t.Run("token present", func(t *testing.T) {
		c := New(ts.URL, WithTokenSource(func() string { return "tok-123" }))
		require.NoError(t, c.Execute(context.Background(), "query { me { id } }", nil, nil))
		assert.Equal(t, "Bearer tok-123", gotAuth)
	})

	t.Run("token absent", func(t *testing.T) {
		c := New(ts.URL, WithTokenSource(func() string { return "" }))
		require.NoError(t, c.Execute(context.Background(), "query { me { id } }", nil, nil))
		assert.Empty(t, gotAuth)
	})
}

func TestExecute_JoinsServerErrorMessages(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"first"},{"message":"second"}]}`))
	}))
	defer ts.Close()

	err := New(ts.URL).Execute(context.Background(), "query { x }", nil, nil)
	require.Error(t, err)

	var gqlErr *Error
	require.ErrorAs(t, err, &gqlErr)
	assert.Equal(t, "first; second", gqlErr.Error())
}

func TestExecute_UnauthenticatedFiresHook(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"Signature has expired","extensions":{"code":"UNAUTHENTICATED"}}]}`))
	}))
	defer ts.Close()

	hookCalled := false
	c := New(ts.URL, WithUnauthenticatedHook(func() { hookCalled = true }))

	err := c.Execute(context.Background(), "query { me { id } }", nil, nil)
	require.Error(t, err)

	var gqlErr *Error
	require.ErrorAs(t, err, &gqlErr)
	assert.True(t, gqlErr.HasCode(CodeUnauthenticated))
	assert.True(t, hookCalled)
}

func TestExecute_OtherErrorsDoNotFireHook(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"boom"}]}`))
	}))
	defer ts.Close()

	hookCalled := false
	c := New(ts.URL, WithUnauthenticatedHook(func() { hookCalled = true }))

	err := c.Execute(context.Background(), "query { x }", nil, nil)
	require.Error(t, err)
	assert.False(t, hookCalled)
}

func TestExecute_TransportErrors(t *testing.T) {
	t.Run("server unreachable", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close() // closed on purpose

		err := New(ts.URL).Execute(context.Background(), "query { x }", nil, nil)
		var te *TransportError
		require.ErrorAs(t, err, &te)
	})

	t.Run("non-JSON body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer ts.Close()

		err := New(ts.URL).Execute(context.Background(), "query { x }", nil, nil)
		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.NotNil(t, errors.Unwrap(te))
	})
}

func TestExecute_CookiesPersistAcrossRequests(t *testing.T) {
	var sawCookie bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("sessionid"); err == nil {
			sawCookie = true
		}
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "abc"})
		w.Write([]byte(`{"data":{}}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	require.NoError(t, c.Execute(context.Background(), "query { x }", nil, nil))
	require.False(t, sawCookie)
	require.NoError(t, c.Execute(context.Background(), "query { x }", nil, nil))
	assert.True(t, sawCookie)
}
