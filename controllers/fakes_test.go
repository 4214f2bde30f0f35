package controllers_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	controllers "github.com/greenroots/social-server/controllers"
	models "github.com/greenroots/social-server/models"
	routes "github.com/greenroots/social-server/routes"
	store "github.com/greenroots/social-server/store"
)

var errBoom = errors.New("connection reset")

// fakeDocs is an in-memory collection of free-form documents keyed by hex id.
type fakeDocs struct {
	mu      sync.Mutex
	docs    map[string]bson.M
	err     error
	filters []models.TreeFilter
	inserts int
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{docs: map[string]bson.M{}}
}

func (f *fakeDocs) Insert(_ context.Context, doc bson.M) (models.InsertAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.InsertAck{}, f.err
	}
	oid := primitive.NewObjectID()
	stored := bson.M{"_id": oid}
	for k, v := range doc {
		stored[k] = v
	}
	f.docs[oid.Hex()] = stored
	f.inserts++
	return models.InsertAck{Acknowledged: true, InsertedID: oid}, nil
}

func (f *fakeDocs) ListUpcoming(_ context.Context, filter models.TreeFilter) ([]bson.M, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	out := []bson.M{}
	for _, d := range f.docs {
		if matchesUpcoming(d, filter) {
			out = append(out, d)
		}
	}
	return out, nil
}

// matchesUpcoming evaluates the same predicate store.UpcomingFilter expresses.
func matchesUpcoming(d bson.M, f models.TreeFilter) bool {
	date, _ := d["event_date"].(string)
	if date < f.FromDate {
		return false
	}
	if f.Type != "" && f.Type != models.AllTypes && d["event_type"] != f.Type {
		return false
	}
	if f.Search != "" {
		title, _ := d["event_title"].(string)
		if !strings.Contains(strings.ToLower(title), strings.ToLower(f.Search)) {
			return false
		}
	}
	return true
}

func (f *fakeDocs) List(_ context.Context) ([]bson.M, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []bson.M{}
	for _, d := range f.docs {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDocs) FindByID(_ context.Context, id string) (bson.M, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := store.ParseID(id); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return d, nil
}

func (f *fakeDocs) DeleteByID(_ context.Context, id string) (models.DeleteAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := store.ParseID(id); err != nil {
		return models.DeleteAck{}, err
	}
	if f.err != nil {
		return models.DeleteAck{}, f.err
	}
	if _, ok := f.docs[id]; !ok {
		return models.DeleteAck{Acknowledged: true}, nil
	}
	delete(f.docs, id)
	return models.DeleteAck{Acknowledged: true, DeletedCount: 1}, nil
}

func (f *fakeDocs) UpdateByID(_ context.Context, id string, body map[string]interface{}) (models.UpdateAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := store.ParseID(id); err != nil {
		return models.UpdateAck{}, err
	}
	if f.err != nil {
		return models.UpdateAck{}, f.err
	}
	d, ok := f.docs[id]
	if !ok {
		return models.UpdateAck{Acknowledged: true}, nil
	}
	for k, v := range store.OverwriteFields(body) {
		d[k] = v
	}
	return models.UpdateAck{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

type fakeJoins struct {
	mu    sync.Mutex
	joins map[string]models.JoinedEvent
	err   error
}

func newFakeJoins() *fakeJoins {
	return &fakeJoins{joins: map[string]models.JoinedEvent{}}
}

func (f *fakeJoins) Insert(_ context.Context, j models.JoinedEvent) (models.InsertAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.InsertAck{}, f.err
	}
	j.ID = primitive.NewObjectID()
	f.joins[j.ID.Hex()] = j
	return models.InsertAck{Acknowledged: true, InsertedID: j.ID}, nil
}

func (f *fakeJoins) List(_ context.Context) ([]models.JoinedEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []models.JoinedEvent{}
	for _, j := range f.joins {
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeJoins) FindByID(_ context.Context, id string) (models.JoinedEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := store.ParseID(id); err != nil {
		return models.JoinedEvent{}, err
	}
	if f.err != nil {
		return models.JoinedEvent{}, f.err
	}
	j, ok := f.joins[id]
	if !ok {
		return models.JoinedEvent{}, store.ErrNotFound
	}
	return j, nil
}

func (f *fakeJoins) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.joins)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type fakeUploader struct {
	url  string
	err  error
	body string
}

func (u *fakeUploader) UploadThumbnail(_ context.Context, file io.Reader, _ string) (string, error) {
	b, _ := io.ReadAll(file)
	u.body = string(b)
	return u.url, u.err
}

type fakeNotifier struct {
	sent chan models.JoinedEvent
}

func (n *fakeNotifier) JoinConfirmed(_ context.Context, j models.JoinedEvent) error {
	n.sent <- j
	return nil
}

type testServer struct {
	env    *controllers.Env
	trees  *fakeDocs
	events *fakeDocs
	joins  *fakeJoins
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		trees:  newFakeDocs(),
		events: newFakeDocs(),
		joins:  newFakeJoins(),
	}
	ts.env = &controllers.Env{
		Trees:  ts.trees,
		Events: ts.events,
		Joins:  ts.joins,
		DB:     fakePinger{},
		Log:    zap.NewNop(),
		Now:    func() time.Time { return time.Date(2024, 6, 15, 23, 30, 0, 0, time.UTC) },
	}
	ts.router = gin.New()
	routes.SetupRoutes(ts.router, ts.env)
	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}
