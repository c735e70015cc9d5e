package domain

// Action is an operation an identity may attempt against a book.
type Action string

// Actions evaluated by CanPerform.
const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// CanPerform is the permission predicate for the book resource.
// A nil actor is an anonymous request.
//
// Reads are open to everyone. Creation requires any authenticated
// identity. Updates and deletes require the book's owner or a staff
// user; books without an owner are mutable only by staff.
func CanPerform(actor *User, book *Book, action Action) bool {
	switch action {
	case ActionRead:
		return true
	case ActionCreate:
		return actor != nil
	case ActionUpdate, ActionDelete:
		if actor == nil {
			return false
		}
		if actor.IsStaff {
			return true
		}
		return book != nil && book.IsOwnedBy(actor.ID)
	default:
		return false
	}
}
