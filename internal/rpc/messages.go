package rpc

// CredentialsRequest is the input of Signup and Login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	OwnerID   string `json:"ownerId"`
	CreatedAt string `json:"createdAt"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type MeRequest struct{}

// MeResponse carries a nil User for anonymous callers.
type MeResponse struct {
	User *User `json:"user,omitempty"`
}

type ListTasksRequest struct{}

type ListTasksResponse struct {
	Tasks []*Task `json:"tasks"`
}

type CreateTaskRequest struct {
	Title string `json:"title"`
}

// UpdateTaskRequest changes only the non-nil fields.
type UpdateTaskRequest struct {
	ID        string  `json:"id"`
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

type TaskResponse struct {
	Task *Task `json:"task"`
}

type DeleteTaskRequest struct {
	ID string `json:"id"`
}

type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
