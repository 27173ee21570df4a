package user

// User represents a user record. Every attribute except ID is optional.
type User struct {
	ID     string   // ID is the storage-assigned identifier
	Nombre *string  // Nombre is the full name of the user
	Cedula *float64 // Cedula is the national ID, used as lookup key but not unique
	Email  *string  // Email is the contact address of the user
	Edad   *float64 // Edad is the age of the user, fractional values allowed
}

// UserPatch holds replacement values for an update. Nil fields are left untouched.
type UserPatch struct {
	Nombre *string
	Cedula *float64
	Email  *string
	Edad   *float64
}

// IsEmpty reports whether the patch replaces no field.
func (p UserPatch) IsEmpty() bool {
	return p.Nombre == nil && p.Cedula == nil && p.Email == nil && p.Edad == nil
}
