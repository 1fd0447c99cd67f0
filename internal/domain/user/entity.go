package user

// User represents a user entity in the system.
type User struct {
	ID    int64  // ID is assigned by the datastore and never changes
	Name  string // Name is the display name of the user
	Email string // Email is the unique email address of the user
}

// Patch carries the fields of a partial update. Nil fields are left untouched.
type Patch struct {
	Name  *string
	Email *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Email == nil
}

// Apply copies the non-nil patch fields onto u.
func (p Patch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}
