package model

type GetMeRequest struct{}

type GetMeResponse User

type UpdateUserRequest struct {
	Name          string         `json:"name"`
	FollowerInput string         `json:"follower_input"`
	SnsLinks      []string       `json:"sns_links"`
	BankInfo      map[string]any `json:"bank_info"`
	LineID        string         `json:"line_id"`
	KakaoID       string         `json:"kakao_id"`
}

type UpdateUserResponse User

type RequestTierUpgradeRequest struct{}

type RequestTierUpgradeResponse struct {
	Tier string `json:"tier"`
}

type GetPendingUsersRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetPendingUsersResponse struct {
	Users []User `json:"users"`
}

type ApproveUserRequest struct {
	ID string `json:"id"`
}

type ApproveUserResponse struct{}

type RejectUserRequest struct {
	ID string `json:"id"`
}

type RejectUserResponse struct{}

type GetTierUpgradeRequestsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetTierUpgradeRequestsResponse struct {
	Users []User `json:"users"`
}

type ApproveTierUpgradeRequest struct {
	ID string `json:"id"`
}

type ApproveTierUpgradeResponse struct {
	Tier string `json:"tier"`
}

type RejectTierUpgradeRequest struct {
	ID string `json:"id"`
}

type RejectTierUpgradeResponse struct{}
