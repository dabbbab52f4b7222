package controller

// Command is the tagged variant consumed by Dispatch. Funnelling every user
// intent through one entry point keeps the single-flight gate at a single
// choke point.
type Command interface {
	isCommand()
}

// Load requests a full refresh of the users collection.
type Load struct{}

// Submit sends the current draft: a create when no edit target is set, an
// update of the targeted record otherwise.
type Submit struct{}

// Delete removes the record with the given id. Confirmation is the
// presentation layer's responsibility; by the time Delete reaches the
// controller it is final.
type Delete struct {
	ID int64
}

// StartEdit enters update mode for the given record, copying its editable
// fields into the draft.
type StartEdit struct {
	ID int64
}

// CancelEdit leaves update mode and clears the draft.
type CancelEdit struct{}

// SetDraft merges the provided fields into the draft. Nil fields are left
// untouched.
type SetDraft struct {
	Name  *string
	Email *string
}

// DismissError clears the error slot.
type DismissError struct{}

func (Load) isCommand()         {}
func (Submit) isCommand()       {}
func (Delete) isCommand()       {}
func (StartEdit) isCommand()    {}
func (CancelEdit) isCommand()   {}
func (SetDraft) isCommand()     {}
func (DismissError) isCommand() {}
