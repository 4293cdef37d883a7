package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer mimics the SmartSave Hub endpoints the client consumes.
type fakeServer struct {
	saved     map[int]int64
	target    map[int]int64
	lastBody  map[string]any
	requestID string
}

func newFakeServer(t *testing.T) (*fakeServer, *Client) {
	t.Helper()
	fs := &fakeServer{
		saved:  map[int]int64{0: 100, 1: 950},
		target: map[int]int64{0: 1000, 1: 1000},
	}

	r := chi.NewRouter()
	r.Post("/add-money/{index}", fs.addMoney)
	r.Post("/delete-goal/{index}", fs.deleteGoal)
	r.Get("/get-upi-link/{index}/{amount}", fs.upiLink)
	r.Post("/broken/{index}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	require.NotNil(t, c)
	return fs, c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (fs *fakeServer) addMoney(w http.ResponseWriter, r *http.Request) {
	fs.requestID = r.Header.Get("X-Request-ID")
	index, _ := strconv.Atoi(chi.URLParam(r, "index"))
	if _, ok := fs.saved[index]; !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid goal index"})
		return
	}

	fs.lastBody = map[string]any{}
	_ = json.NewDecoder(r.Body).Decode(&fs.lastBody)
	amount := int64(fs.lastBody["amount"].(float64))
	if amount <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Amount must be positive"})
		return
	}

	fs.saved[index] += amount
	saved, target := fs.saved[index], fs.target[index]
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"saved":        saved,
		"target":       target,
		"percent":      min(100, int(saved*100/target)),
		"nudge":        "Keep going!",
		"streak":       3,
		"history_item": map[string]any{"amount": amount, "date": "30 Jan", "time": "10:15"},
		"is_completed": saved >= target,
	})
}

func (fs *fakeServer) deleteGoal(w http.ResponseWriter, r *http.Request) {
	index, _ := strconv.Atoi(chi.URLParam(r, "index"))
	if _, ok := fs.saved[index]; !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid goal index"})
		return
	}
	delete(fs.saved, index)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (fs *fakeServer) upiLink(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"upi_uri": "upi://pay?pa=loki1@okaxis&pn=MicroSave&am=" + chi.URLParam(r, "amount"),
	})
}

func TestAddMoney_SendsAmountAndDecodes(t *testing.T) {
	fs, c := newFakeServer(t)

	res, err := c.AddMoney(context.Background(), 0, 250)
	require.NoError(t, err)

	assert.Equal(t, float64(250), fs.lastBody["amount"], "POST body must carry the entered amount")
	assert.NotEmpty(t, fs.requestID)
	assert.True(t, res.Success)
	assert.Equal(t, int64(350), res.Saved)
	assert.Equal(t, 35, res.Percent)
	assert.Equal(t, 3, res.Streak)
	require.NotNil(t, res.HistoryItem)
	assert.Equal(t, int64(250), res.HistoryItem.Amount)
	assert.False(t, res.IsCompleted)

	u := res.CardUpdate()
	assert.Equal(t, int64(350), u.Saved)
	assert.Same(t, res.HistoryItem, u.HistoryItem)
}

func TestAddMoney_Completion(t *testing.T) {
	_, c := newFakeServer(t)

	res, err := c.AddMoney(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.True(t, res.IsCompleted)
	assert.Equal(t, 100, res.Percent)
}

func TestAddMoney_ServerRejection(t *testing.T) {
	_, c := newFakeServer(t)

	_, err := c.AddMoney(context.Background(), 7, 50)
	require.Error(t, err)
	assert.True(t, IsServerError(err))

	var se *ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, "Invalid goal index", se.Error())
}

func TestAddMoney_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url)
	_, err := c.AddMoney(context.Background(), 0, 10)
	require.Error(t, err)
	assert.False(t, IsServerError(err))
}

func TestPost_NonJSONErrorIsTransportClass(t *testing.T) {
	_, c := newFakeServer(t)

	var out statusResponse
	_, err := c.post(context.Background(), "/broken/0", nil, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.False(t, IsServerError(err))
}

func TestAddMoney_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).AddMoney(context.Background(), 0, 10)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDeleteGoal(t *testing.T) {
	fs, c := newFakeServer(t)

	require.NoError(t, c.DeleteGoal(context.Background(), 0))
	_, still := fs.saved[0]
	assert.False(t, still)

	err := c.DeleteGoal(context.Background(), 0)
	assert.True(t, IsServerError(err))
}

func TestUPILink(t *testing.T) {
	_, c := newFakeServer(t)

	link, err := c.UPILink(context.Background(), 0, 75)
	require.NoError(t, err)
	assert.Equal(t, "upi://pay?pa=loki1@okaxis&pn=MicroSave&am=75", link)
}

func TestNewClient_RejectsBadURLs(t *testing.T) {
	assert.Nil(t, NewClient(""))
	assert.Nil(t, NewClient("ftp://example.com"))
	c := NewClient(" http://example.com/ ")
	require.NotNil(t, c)
	assert.Equal(t, "http://example.com", c.BaseURL())
}
