package domain

import "time"

// User is the push-notification recipient. Records are written by the mobile
// client's own backend; this service only reads them to resolve FCM tokens.
type User struct {
	UserID    string    `json:"id" dynamodbav:"user_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Name      string    `json:"name" dynamodbav:"name"`
	FCMToken  *string   `json:"-" dynamodbav:"fcm_token"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

// HasToken reports whether the user can receive push notifications.
func (u *User) HasToken() bool {
	return u.FCMToken != nil && *u.FCMToken != ""
}
