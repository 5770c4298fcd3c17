package domain

import "time"

const (
	TitleMinLength = 1
	TitleMaxLength = 200
)

// Item is a resource owned by exactly one user. OwnerID is set once at creation and
// never rewritten by an update.
type Item struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnedBy reports whether userID is the item's owner.
func (i *Item) OwnedBy(userID int64) bool {
	return i.OwnerID == userID
}

// NewItem carries the caller-supplied fields for a new item.
type NewItem struct {
	Title       string
	Description *string
	IsCompleted bool
}

// ItemPatch is a partial update. Fields that were not supplied stay untouched.
type ItemPatch struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	IsCompleted Optional[bool]   `json:"is_completed"`
}

// Empty reports whether the patch would change nothing.
func (p ItemPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.IsCompleted.Set
}

// Validate rejects explicit nulls on non-nullable fields and out of range titles.
func (p ItemPatch) Validate() error {
	var ve ValidationError
	if p.Title.Set {
		switch {
		case p.Title.Null:
			ve.Add("title", "title may not be null")
		case len([]rune(p.Title.Value)) < TitleMinLength:
			ve.Add("title", "title must be at least 1 character")
		case len([]rune(p.Title.Value)) > TitleMaxLength:
			ve.Add("title", "title must be at most 200 characters")
		}
	}
	if p.IsCompleted.Set && p.IsCompleted.Null {
		ve.Add("is_completed", "is_completed may not be null")
	}
	return ve.OrNil()
}

// Apply copies the supplied fields onto item and bumps UpdatedAt.
func (p ItemPatch) Apply(item *Item, now time.Time) {
	if p.Title.Set && !p.Title.Null {
		item.Title = p.Title.Value
	}
	if p.Description.Set {
		if p.Description.Null {
			item.Description = nil
		} else {
			d := p.Description.Value
			item.Description = &d
		}
	}
	if p.IsCompleted.Set && !p.IsCompleted.Null {
		item.IsCompleted = p.IsCompleted.Value
	}
	item.UpdatedAt = now
}

// Page bounds a list query. A zero Limit means no limit.
type Page struct {
	Skip  int
	Limit int
}
