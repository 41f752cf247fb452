package user

// User is the profile document for an authenticated customer. Password is
// only populated when read together with the identity record.
type User struct {
	ID          int     `json:"userId"`
	Email       string  `json:"email"`
	Password    string  `json:"password,omitempty"`
	DisplayName string  `json:"displayName"`
	Phone       string  `json:"phone,omitempty"`
	AvatarPic   *string `json:"avatarPic,omitempty"`
	CreatedAt   string  `json:"createAt,omitempty"`
	UpdatedAt   string  `json:"updateAt,omitempty"`
}
