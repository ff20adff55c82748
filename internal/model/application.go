package model

type ApplyCampaignRequest struct {
	CampaignID string `json:"campaign_id"`
}

type ApplyCampaignResponse struct {
	ID string `json:"id"`
}

type SubmitResultRequest struct {
	ID        string `json:"id"`
	ResultURL string `json:"result_url"`
}

type SubmitResultResponse struct{}

type GetApplicationsRequest struct {
	CampaignID string `json:"campaign_id"`
	Status     string `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetApplicationsResponse struct {
	Applications []Application `json:"applications"`
}

type SelectApplicationRequest struct {
	ID string `json:"id"`
}

type SelectApplicationResponse struct{}

type ConfirmApplicationRequest struct {
	ID string `json:"id"`
}

type ConfirmApplicationResponse struct{}

type MarkApplicationPaidRequest struct {
	ID string `json:"id"`
}

type MarkApplicationPaidResponse struct{}

type GetMyApplicationsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetMyApplicationsResponse struct {
	Applications []Application `json:"applications"`
}

type GetPayoutHistoryRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetPayoutHistoryResponse struct {
	Applications []Application `json:"applications"`
	TotalAmount  float64       `json:"total_amount"`
}
