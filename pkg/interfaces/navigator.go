package interfaces

// Navigator is the external navigation collaborator. Depart is signaled
// after a confirmed leave, once the leave command has had time to reach
// the server.
type Navigator interface {
	Depart()
}
