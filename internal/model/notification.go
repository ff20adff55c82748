package model

type GetNotificationsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unread_count"`
}

type ReadNotificationRequest struct {
	ID int64 `json:"id"`
}

type ReadNotificationResponse struct{}

type ReadAllNotificationsRequest struct{}

type ReadAllNotificationsResponse struct{}
