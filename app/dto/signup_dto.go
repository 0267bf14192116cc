package dto

// RegisterRequest represents the request payload for account registration
type RegisterRequest struct {
	Name     string  `json:"name" example:"Ada Lovelace"`
	Email    string  `json:"email" example:"ada@example.com"`
	Password string  `json:"password" example:"Str0ng!pass"`
	Role     *string `json:"role,omitempty" example:"marketing_manager"`
}
