package user

// UserFields carries the writable attributes of a user. Nil means "not provided".
type UserFields struct {
	Nombre *string
	Cedula *float64
	Email  *string
	Edad   *float64
}

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	UserFields
}

// CreateUserResponse carries the persisted user, including its generated ID.
type CreateUserResponse struct {
	User User
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// UpdateUserRequest represents the request payload for updating the user matching Cedula.
// Only the non-nil Fields are replaced; Fields.Cedula may move the record to a new national ID.
type UpdateUserRequest struct {
	Cedula float64
	Fields UserFields
}

// UpdateUserResponse carries the user as stored after the update.
type UpdateUserResponse struct {
	User User
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	Cedula float64
}

// DeleteUserResponse carries the last stored values of the deleted user.
type DeleteUserResponse struct {
	User User
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID     string
	Nombre *string
	Cedula *float64
	Email  *string
	Edad   *float64
}
