package user

// User is the owner of a chat session. Id is the numeric identifier sent by the chat front-end
// in the X-User-Id header.
type User struct {
	Id          int
	DisplayName string
}
