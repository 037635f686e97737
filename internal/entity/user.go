package entity

type User struct {
	Username string `json:"username"`
	Password string `json:"password"` // bcrypt hash once stored
}

// Credentials is the body of /register and /login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePassword is the body of /change-password.
type ChangePassword struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
}

/*
Mysql Schema:
CREATE TABLE users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(255) NOT NULL UNIQUE,
	password VARCHAR(255) NOT NULL
);
*/
