package store

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/boxwire/pkg/errors"
)

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"flow", true},
		{"flow-2.v1", true},
		{"_draft", true},
		{"", false},
		{".hidden", false},
		{"-flag", false},
		{"a/b", false},
		{"../etc", false},
		{strings.Repeat("x", 128), true},
		{strings.Repeat("x", 129), false},
	}
	for _, tt := range tests {
		if got := ValidName(tt.name); got != tt.want {
			t.Errorf("ValidName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("one"))
	if len(a) != 64 {
		t.Errorf("len(Hash) = %d, want 64", len(a))
	}
	if a != Hash([]byte("one")) {
		t.Error("Hash is not deterministic")
	}
	if a == Hash([]byte("two")) {
		t.Error("different documents have the same hash")
	}
}

// testStore runs the shared contract against a backend.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !IsNotFound(err) {
		t.Errorf("Get(missing) error = %v, want not found", err)
	}
	if _, err := s.Get(ctx, "missing"); !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		t.Errorf("Get(missing) code = %v, want DIAGRAM_NOT_FOUND", errors.GetCode(err))
	}

	if err := s.Put(ctx, "b", []byte(`{"b":1}`)); err != nil {
		t.Fatalf("Put(b) error: %v", err)
	}
	if err := s.Put(ctx, "a", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put(a) error: %v", err)
	}
	if err := s.Put(ctx, "a", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("Put(a) again error: %v", err)
	}

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get(a) error: %v", err)
	}
	if string(got) != `{"a":2}` {
		t.Errorf("Get(a) = %s, want {\"a\":2}", got)
	}

	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Errorf("List() = %v, want [a b]", names)
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete(a) error: %v", err)
	}
	if err := s.Delete(ctx, "a"); !IsNotFound(err) {
		t.Errorf("Delete(a) twice error = %v, want not found", err)
	}
	if _, err := s.Get(ctx, "a"); !IsNotFound(err) {
		t.Errorf("Get(a) after delete error = %v, want not found", err)
	}

	if err := s.Put(ctx, "../x", nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Put(../x) error = %v, want INVALID_INPUT", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "diagrams")
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	if s.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", s.Dir(), dir)
	}
	if got, want := s.Path("flow"), filepath.Join(dir, "flow.json"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	testStore(t, s)
}

// fakeRedis keeps string keys in memory and answers with prebuilt commands.
type fakeRedis struct {
	data   map[string]string
	closed bool
}

func newFakeRedis() *fakeRedis { return &fakeRedis{data: map[string]string{}} }

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// Scan returns one key per page so the store has to follow the cursor.
func (f *fakeRedis) Scan(_ context.Context, cursor uint64, match string, _ int64) *redis.ScanCmd {
	prefix := strings.TrimSuffix(match, "*")
	var keys []string
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if int(cursor) >= len(keys) {
		return redis.NewScanCmdResult(nil, 0, nil)
	}
	next := cursor + 1
	if int(next) >= len(keys) {
		next = 0
	}
	return redis.NewScanCmdResult(keys[cursor:cursor+1], next, nil)
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisStore(t *testing.T) {
	client := newFakeRedis()
	client.data["other:diagram:x"] = "{}"
	s := NewRedisStoreWithClient(client, "")
	testStore(t, s)

	if _, ok := client.data["boxwire:diagram:b"]; !ok {
		t.Errorf("keys = %v, want boxwire:diagram:b", client.data)
	}
	if !client.closed {
		t.Error("Close() did not close the client")
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	if err := s.Put(ctx, "a", []byte("x")); err != nil {
		t.Errorf("Put() error: %v", err)
	}
	if _, err := s.Get(ctx, "a"); !IsNotFound(err) {
		t.Errorf("Get() error = %v, want not found", err)
	}
	if names, _ := s.List(ctx); len(names) != 0 {
		t.Errorf("List() = %v, want empty", names)
	}
}

type flakyRedis struct {
	*fakeRedis
	fails int
	pings int
}

func (f *flakyRedis) Ping(context.Context) *redis.StatusCmd {
	f.pings++
	if f.pings <= f.fails {
		return redis.NewStatusResult("", stderrors.New("connection refused"))
	}
	return redis.NewStatusResult("PONG", nil)
}

func TestPingRetries(t *testing.T) {
	client := &flakyRedis{fakeRedis: newFakeRedis(), fails: 1}
	if err := ping(context.Background(), client, 2); err != nil {
		t.Errorf("ping() error: %v", err)
	}
	if client.pings != 2 {
		t.Errorf("pings = %d, want 2", client.pings)
	}

	client = &flakyRedis{fakeRedis: newFakeRedis(), fails: 5}
	if err := ping(context.Background(), client, 1); err == nil {
		t.Error("ping() with one attempt succeeded, want error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client = &flakyRedis{fakeRedis: newFakeRedis(), fails: 5}
	if err := ping(ctx, client, 3); !stderrors.Is(err, context.Canceled) {
		t.Errorf("ping() cancelled error = %v, want context.Canceled", err)
	}
}
