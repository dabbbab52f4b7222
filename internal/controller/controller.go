package controller

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rosterhq/roster/internal/api"
)

// Operation labels the network call currently in flight.
type Operation int

const (
	OpNone Operation = iota
	OpLoad
	OpCreate
	OpUpdate
	OpDelete
)

// String returns a progress label suitable for display.
func (op Operation) String() string {
	switch op {
	case OpLoad:
		return "loading"
	case OpCreate:
		return "creating"
	case OpUpdate:
		return "updating"
	case OpDelete:
		return "deleting"
	default:
		return "idle"
	}
}

// User-facing failure messages. Validation and request failures surface
// through the same error slot; only the text differs.
const (
	msgValidation   = "Name and email are required"
	msgLoadFailed   = "Failed to load users"
	msgCreateFailed = "Failed to create user"
	msgUpdateFailed = "Failed to update user"
	msgDeleteFailed = "Failed to delete user"
)

// Snapshot is an immutable view of the controller state at a point in time.
type Snapshot struct {
	// Users is the last known server state of the collection, replaced
	// wholesale after every successful load.
	Users []api.User

	// Draft holds the record-in-progress. It is always defined; empty
	// strings mean a blank form.
	Draft api.Draft

	// EditTarget selects update mode when set; nil means create mode.
	EditTarget *int64

	// Busy is true while exactly one operation is in flight.
	Busy bool

	// Op labels the in-flight operation, OpNone when idle.
	Op Operation

	// Err holds the most recent failure message, empty when clear.
	Err string

	// LastLoaded records when Users last reflected a successful load.
	LastLoaded time.Time
}

// Editing reports whether the snapshot is in update mode.
func (s Snapshot) Editing() bool {
	return s.EditTarget != nil
}

// Controller owns the client-side view of the users collection and
// sequences every operation against the API. All state mutation happens
// here; presentation layers only dispatch commands and render snapshots.
type Controller struct {
	svc api.Service

	mu        sync.Mutex
	st        Snapshot
	listeners []func(Snapshot)
}

// New builds a Controller over the given API service. The collection starts
// empty; callers typically dispatch Load immediately.
func New(svc api.Service) *Controller {
	return &Controller{svc: svc}
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// state change. Callbacks run on the dispatching goroutine and must not
// call Dispatch themselves.
func (c *Controller) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Dispatch executes a command. It reports false when the command was
// refused: any command while an operation is in flight, a Submit that fails
// validation, or a StartEdit for an id that is not in the collection.
// Network commands block until the operation, including its chained reload,
// has completed.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) bool {
	switch cmd := cmd.(type) {
	case Load:
		return c.load(ctx)
	case Submit:
		return c.submit(ctx)
	case Delete:
		return c.deleteUser(ctx, cmd.ID)
	case StartEdit:
		return c.startEdit(cmd.ID)
	case CancelEdit:
		return c.cancelEdit()
	case SetDraft:
		return c.setDraft(cmd)
	case DismissError:
		return c.dismissError()
	default:
		return false
	}
}

func (c *Controller) load(ctx context.Context) bool {
	if !c.begin(OpLoad) {
		return false
	}
	users, err := c.svc.ListUsers(ctx)
	c.finish(func(st *Snapshot) {
		if err != nil {
			st.Err = msgLoadFailed
			return
		}
		st.Users = users
		st.LastLoaded = time.Now()
	})
	return true
}

func (c *Controller) submit(ctx context.Context) bool {
	c.mu.Lock()
	if c.st.Busy {
		c.mu.Unlock()
		return false
	}
	if strings.TrimSpace(c.st.Draft.Name) == "" || strings.TrimSpace(c.st.Draft.Email) == "" {
		// Validation failures never leave Idle and never reach the network.
		c.st.Err = msgValidation
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
		return false
	}
	draft := c.st.Draft
	target := c.st.EditTarget
	op := OpCreate
	if target != nil {
		op = OpUpdate
	}
	c.st.Busy = true
	c.st.Op = op
	c.st.Err = ""
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	var err error
	if target == nil {
		// The server's echo of the created record is authoritative, but the
		// chained reload below supersedes any targeted cache insert.
		_, err = c.svc.CreateUser(ctx, draft)
	} else {
		_, err = c.svc.UpdateUser(ctx, *target, draft)
	}
	if err != nil {
		// Draft and edit target are preserved so the user can retry.
		c.finish(func(st *Snapshot) {
			if op == OpCreate {
				st.Err = msgCreateFailed
			} else {
				st.Err = msgUpdateFailed
			}
		})
		return true
	}

	c.mu.Lock()
	c.st.Draft = api.Draft{}
	c.st.EditTarget = nil
	c.mu.Unlock()

	c.reloadAndFinish(ctx)
	return true
}

func (c *Controller) deleteUser(ctx context.Context, id int64) bool {
	if !c.begin(OpDelete) {
		return false
	}
	if err := c.svc.DeleteUser(ctx, id); err != nil {
		c.finish(func(st *Snapshot) {
			st.Err = msgDeleteFailed
		})
		return true
	}
	// Deleting the record currently in edit mode intentionally leaves the
	// edit target set; a subsequent submit surfaces the not-found failure.
	c.reloadAndFinish(ctx)
	return true
}

func (c *Controller) startEdit(id int64) bool {
	c.mu.Lock()
	if c.st.Busy {
		c.mu.Unlock()
		return false
	}
	var found *api.User
	for i := range c.st.Users {
		if c.st.Users[i].ID == id {
			found = &c.st.Users[i]
			break
		}
	}
	if found == nil {
		c.mu.Unlock()
		return false
	}
	target := found.ID
	c.st.EditTarget = &target
	c.st.Draft = api.Draft{Name: found.Name, Email: found.Email}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return true
}

func (c *Controller) cancelEdit() bool {
	c.mu.Lock()
	if c.st.Busy {
		c.mu.Unlock()
		return false
	}
	c.st.EditTarget = nil
	c.st.Draft = api.Draft{}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return true
}

func (c *Controller) setDraft(cmd SetDraft) bool {
	c.mu.Lock()
	if c.st.Busy {
		c.mu.Unlock()
		return false
	}
	if cmd.Name != nil {
		c.st.Draft.Name = *cmd.Name
	}
	if cmd.Email != nil {
		c.st.Draft.Email = *cmd.Email
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return true
}

func (c *Controller) dismissError() bool {
	c.mu.Lock()
	c.st.Err = ""
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return true
}

// begin moves the controller into the busy state for op, clearing the error
// slot. It reports false when another operation is already in flight.
func (c *Controller) begin(op Operation) bool {
	c.mu.Lock()
	if c.st.Busy {
		c.mu.Unlock()
		return false
	}
	c.st.Busy = true
	c.st.Op = op
	c.st.Err = ""
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return true
}

// finish applies the completion mutation and returns to Idle.
func (c *Controller) finish(apply func(*Snapshot)) {
	c.mu.Lock()
	apply(&c.st)
	c.st.Busy = false
	c.st.Op = OpNone
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// reloadAndFinish runs the chained post-mutation reload within the same
// logical operation. The caller must hold the busy flag. A reload failure
// never rolls back the mutation; the collection is simply left stale.
func (c *Controller) reloadAndFinish(ctx context.Context) {
	c.mu.Lock()
	c.st.Op = OpLoad
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	users, err := c.svc.ListUsers(ctx)
	c.finish(func(st *Snapshot) {
		if err != nil {
			st.Err = msgLoadFailed
			return
		}
		st.Users = users
		st.LastLoaded = time.Now()
	})
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := c.st
	snap.Users = cloneUsers(c.st.Users)
	if c.st.EditTarget != nil {
		id := *c.st.EditTarget
		snap.EditTarget = &id
	}
	return snap
}

func (c *Controller) notify(snap Snapshot) {
	c.mu.Lock()
	listeners := make([]func(Snapshot), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}

func cloneUsers(users []api.User) []api.User {
	if len(users) == 0 {
		return nil
	}
	dup := make([]api.User, len(users))
	copy(dup, users)
	return dup
}
