package cli

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/rosterhq/roster/internal/api"
	"github.com/rosterhq/roster/internal/controller"
)

// memService is a minimal in-memory api.Service for driving the runner.
type memService struct {
	users  map[int64]api.User
	nextID int64
}

func newMemService(users ...api.User) *memService {
	s := &memService{users: make(map[int64]api.User), nextID: 1}
	for _, u := range users {
		s.users[u.ID] = u
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
	}
	return s
}

func (s *memService) ListUsers(context.Context) ([]api.User, error) {
	out := make([]api.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memService) GetUser(_ context.Context, id int64) (api.User, error) {
	u, ok := s.users[id]
	if !ok {
		return api.User{}, api.ErrNotFound
	}
	return u, nil
}

func (s *memService) CreateUser(_ context.Context, d api.Draft) (api.User, error) {
	u := api.User{ID: s.nextID, Name: d.Name, Email: d.Email}
	s.users[u.ID] = u
	s.nextID++
	return u, nil
}

func (s *memService) UpdateUser(_ context.Context, id int64, d api.Draft) (api.User, error) {
	if _, ok := s.users[id]; !ok {
		return api.User{}, api.ErrNotFound
	}
	u := api.User{ID: id, Name: d.Name, Email: d.Email}
	s.users[id] = u
	return u, nil
}

func (s *memService) DeleteUser(_ context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return api.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func testRunner(t *testing.T, svc api.Service) (*Runner, *strings.Builder) {
	t.Helper()
	var out strings.Builder
	r := NewRunner(controller.New(svc), &out)
	r.askDraft = func(initial api.Draft) (api.Draft, error) {
		t.Fatal("unexpected prompt")
		return api.Draft{}, nil
	}
	r.confirm = func(string) (bool, error) {
		t.Fatal("unexpected confirm")
		return false, nil
	}
	return r, &out
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line     string
		wantName string
		wantID   int64
		wantErr  bool
	}{
		{line: "list", wantName: "list"},
		{line: "  LIST  ", wantName: "list"},
		{line: "show 7", wantName: "show", wantID: 7},
		{line: "edit 12", wantName: "edit", wantID: 12},
		{line: "del 3", wantName: "del", wantID: 3},
		{line: "del", wantErr: true},
		{line: "show abc", wantErr: true},
		{line: "show -1", wantErr: true},
		{line: "list extra", wantErr: true},
		{line: "", wantErr: true},
	}

	for _, tt := range tests {
		name, id, err := parseCommand(tt.line)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseCommand(%q): expected error, got %q %d", tt.line, name, id)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseCommand(%q): %v", tt.line, err)
			continue
		}
		if name != tt.wantName || id != tt.wantID {
			t.Errorf("parseCommand(%q) = %q %d, want %q %d",
				tt.line, name, id, tt.wantName, tt.wantID)
		}
	}
}

func TestExecute_ListAndShow(t *testing.T) {
	svc := newMemService(
		api.User{ID: 1, Name: "Ada", Email: "ada@example.com"},
		api.User{ID: 2, Name: "Grace", Email: "grace@example.com"},
	)
	r, out := testRunner(t, svc)
	ctx := context.Background()

	if _, err := r.Execute(ctx, "reload"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !strings.Contains(out.String(), "Ada") || !strings.Contains(out.String(), "Grace") {
		t.Fatalf("list output missing users:\n%s", out.String())
	}

	out.Reset()
	if _, err := r.Execute(ctx, "show 2"); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out.String(), "grace@example.com") {
		t.Fatalf("show output = %q", out.String())
	}
}

func TestExecute_AddPromptsAndCreates(t *testing.T) {
	svc := newMemService()
	r, out := testRunner(t, svc)
	ctx := context.Background()

	r.askDraft = func(initial api.Draft) (api.Draft, error) {
		if initial.Name != "" || initial.Email != "" {
			t.Fatalf("add should start from a blank draft, got %+v", initial)
		}
		return api.Draft{Name: "Ada", Email: "ada@example.com"}, nil
	}

	if _, err := r.Execute(ctx, "add"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(svc.users) != 1 {
		t.Fatalf("server has %d users, want 1", len(svc.users))
	}
	if !strings.Contains(out.String(), "Ada") {
		t.Fatalf("list after add missing new user:\n%s", out.String())
	}
}

func TestExecute_EditSeedsDraftFromCache(t *testing.T) {
	svc := newMemService(api.User{ID: 5, Name: "Bob", Email: "bob@example.com"})
	r, _ := testRunner(t, svc)
	ctx := context.Background()

	if _, err := r.Execute(ctx, "reload"); err != nil {
		t.Fatalf("reload: %v", err)
	}

	r.askDraft = func(initial api.Draft) (api.Draft, error) {
		if initial.Name != "Bob" || initial.Email != "bob@example.com" {
			t.Fatalf("edit draft not seeded from cache: %+v", initial)
		}
		return api.Draft{Name: "Bobby", Email: "bobby@example.com"}, nil
	}

	if _, err := r.Execute(ctx, "edit 5"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got := svc.users[5].Name; got != "Bobby" {
		t.Fatalf("server name = %q, want Bobby", got)
	}
}

func TestExecute_EditUnknownIDFails(t *testing.T) {
	r, _ := testRunner(t, newMemService())
	ctx := context.Background()

	if _, err := r.Execute(ctx, "reload"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, err := r.Execute(ctx, "edit 99"); err == nil {
		t.Fatal("edit of unknown id should fail before any prompt")
	}
}

func TestExecute_DeleteHonorsConfirm(t *testing.T) {
	svc := newMemService(api.User{ID: 1, Name: "Ada", Email: "ada@example.com"})
	r, out := testRunner(t, svc)
	ctx := context.Background()

	if _, err := r.Execute(ctx, "reload"); err != nil {
		t.Fatalf("reload: %v", err)
	}

	r.confirm = func(string) (bool, error) { return false, nil }
	if _, err := r.Execute(ctx, "del 1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if len(svc.users) != 1 {
		t.Fatal("declined delete still removed the user")
	}
	if !strings.Contains(out.String(), "cancelled") {
		t.Fatalf("expected cancelled notice, got:\n%s", out.String())
	}

	r.confirm = func(string) (bool, error) { return true, nil }
	if _, err := r.Execute(ctx, "del 1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if len(svc.users) != 0 {
		t.Fatal("confirmed delete did not remove the user")
	}
}

func TestExecute_QuitAndUnknown(t *testing.T) {
	r, _ := testRunner(t, newMemService())
	ctx := context.Background()

	done, err := r.Execute(ctx, "quit")
	if err != nil || !done {
		t.Fatalf("quit = (%v, %v), want (true, nil)", done, err)
	}

	if _, err := r.Execute(ctx, "frobnicate"); err == nil {
		t.Fatal("unknown command should error")
	}
}
