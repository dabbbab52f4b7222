// Package cli implements the line-oriented roster client. It reads one
// command per line, drives the shared controller, and prints the resulting
// state as plain text. Useful over slow links and in scripts where the
// full-screen client is overkill.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/rosterhq/roster/internal/api"
	"github.com/rosterhq/roster/internal/controller"
)

// Runner executes commands against a controller and renders the outcome.
type Runner struct {
	ctrl *controller.Controller
	out  io.Writer

	// askDraft and confirm are swappable for tests; the defaults use
	// interactive survey prompts.
	askDraft func(initial api.Draft) (api.Draft, error)
	confirm  func(msg string) (bool, error)
}

// NewRunner returns a Runner writing to out.
func NewRunner(ctrl *controller.Controller, out io.Writer) *Runner {
	return &Runner{
		ctrl:     ctrl,
		out:      out,
		askDraft: surveyDraft,
		confirm:  surveyConfirm,
	}
}

// Run reads commands from in until EOF or a quit command, executing each
// against the controller. The initial load happens before the first prompt.
func (r *Runner) Run(ctx context.Context, in io.Reader) error {
	r.ctrl.Dispatch(ctx, controller.Load{})
	r.renderList()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		done, err := r.Execute(ctx, line)
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
			continue
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// Execute runs a single command line. It reports done=true when the user
// asked to quit.
func (r *Runner) Execute(ctx context.Context, line string) (done bool, err error) {
	name, id, err := parseCommand(line)
	if err != nil {
		return false, err
	}

	switch name {
	case "quit":
		return true, nil

	case "help":
		r.printHelp()
		return false, nil

	case "list":
		r.renderList()
		return false, nil

	case "reload":
		r.ctrl.Dispatch(ctx, controller.Load{})
		r.renderList()
		return false, nil

	case "show":
		r.renderShow(id)
		return false, nil

	case "add":
		return false, r.runAdd(ctx)

	case "edit":
		return false, r.runEdit(ctx, id)

	case "del":
		return false, r.runDelete(ctx, id)
	}

	return false, fmt.Errorf("unknown command %q (try help)", name)
}

func (r *Runner) runAdd(ctx context.Context) error {
	r.ctrl.Dispatch(ctx, controller.CancelEdit{})

	draft, err := r.askDraft(api.Draft{})
	if err != nil {
		return err
	}

	r.ctrl.Dispatch(ctx, controller.SetDraft{Name: &draft.Name, Email: &draft.Email})
	r.ctrl.Dispatch(ctx, controller.Submit{})
	r.renderList()
	return nil
}

func (r *Runner) runEdit(ctx context.Context, id int64) error {
	if !r.ctrl.Dispatch(ctx, controller.StartEdit{ID: id}) {
		return fmt.Errorf("no user with id %d in the current list", id)
	}

	draft, err := r.askDraft(r.ctrl.Snapshot().Draft)
	if err != nil {
		r.ctrl.Dispatch(ctx, controller.CancelEdit{})
		return err
	}

	r.ctrl.Dispatch(ctx, controller.SetDraft{Name: &draft.Name, Email: &draft.Email})
	r.ctrl.Dispatch(ctx, controller.Submit{})
	r.renderList()
	return nil
}

func (r *Runner) runDelete(ctx context.Context, id int64) error {
	ok, err := r.confirm(fmt.Sprintf("Delete user %d?", id))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(r.out, "cancelled")
		return nil
	}

	r.ctrl.Dispatch(ctx, controller.Delete{ID: id})
	r.renderList()
	return nil
}

func (r *Runner) renderList() {
	snap := r.ctrl.Snapshot()
	if snap.Err != "" {
		fmt.Fprintf(r.out, "! %s\n", snap.Err)
	}
	if len(snap.Users) == 0 {
		fmt.Fprintln(r.out, "(no users)")
		return
	}
	for _, u := range snap.Users {
		fmt.Fprintf(r.out, "%4d  %-24s %s\n", u.ID, u.Name, u.Email)
	}
}

func (r *Runner) renderShow(id int64) {
	for _, u := range r.ctrl.Snapshot().Users {
		if u.ID == id {
			fmt.Fprintf(r.out, "id:    %d\nname:  %s\nemail: %s\n", u.ID, u.Name, u.Email)
			return
		}
	}
	fmt.Fprintf(r.out, "no user with id %d in the current list\n", id)
}

func (r *Runner) printHelp() {
	fmt.Fprint(r.out, `commands:
  list        print the cached user list
  reload      fetch the list from the server
  show <id>   print one user from the cache
  add         create a user (prompts for fields)
  edit <id>   update a user (prompts for fields)
  del <id>    delete a user (asks to confirm)
  help        this text
  quit        exit
`)
}

// parseCommand splits a line into a command name and optional id argument.
func parseCommand(line string) (name string, id int64, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", 0, errors.New("empty command")
	}
	name = strings.ToLower(fields[0])

	needsID := name == "show" || name == "edit" || name == "del"
	if needsID {
		if len(fields) < 2 {
			return "", 0, fmt.Errorf("%s requires an id", name)
		}
		id, err = strconv.ParseInt(fields[1], 10, 64)
		if err != nil || id <= 0 {
			return "", 0, fmt.Errorf("invalid id %q", fields[1])
		}
	} else if len(fields) > 1 {
		return "", 0, fmt.Errorf("%s takes no arguments", name)
	}

	return name, id, nil
}

func surveyDraft(initial api.Draft) (api.Draft, error) {
	questions := []*survey.Question{
		{
			Name:     "name",
			Prompt:   &survey.Input{Message: "Name:", Default: initial.Name},
			Validate: survey.Required,
		},
		{
			Name:     "email",
			Prompt:   &survey.Input{Message: "Email:", Default: initial.Email},
			Validate: survey.Required,
		},
	}

	var answers struct {
		Name  string
		Email string
	}
	if err := survey.Ask(questions, &answers); err != nil {
		return api.Draft{}, err
	}
	return api.Draft{Name: answers.Name, Email: answers.Email}, nil
}

func surveyConfirm(msg string) (bool, error) {
	ok := false
	err := survey.AskOne(&survey.Confirm{Message: msg}, &ok)
	return ok, err
}
