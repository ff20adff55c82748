package model

type CreateCampaignRequest struct {
	Title        string `json:"title"`
	BrandName    string `json:"brand_name"`
	GuideContent string `json:"guide_content"`
	GuideURL     string `json:"guide_url"`
	LineID       string `json:"line_id"`
	KakaoID      string `json:"kakao_id"`

	PayoutAmount     float64  `json:"payout_amount"`
	RecruitmentQuota int64    `json:"recruitment_quota"`
	BrandImageURL    string   `json:"brand_image_url"`
	FollowerTiers    []string `json:"follower_tiers"`
	Deadline         string   `json:"deadline"`
}

type CreateCampaignResponse struct {
	ID string `json:"id"`
}

type UpdateCampaignRequest struct {
	ID string `json:"id"`

	Title        string `json:"title"`
	BrandName    string `json:"brand_name"`
	GuideContent string `json:"guide_content"`
	GuideURL     string `json:"guide_url"`
	LineID       string `json:"line_id"`
	KakaoID      string `json:"kakao_id"`

	PayoutAmount     float64  `json:"payout_amount"`
	RecruitmentQuota int64    `json:"recruitment_quota"`
	BrandImageURL    string   `json:"brand_image_url"`
	FollowerTiers    []string `json:"follower_tiers"`
	Deadline         string   `json:"deadline"`
}

type UpdateCampaignResponse struct{}

type ExtendCampaignDeadlineRequest struct {
	ID       string `json:"id"`
	Deadline string `json:"deadline"`
}

type ExtendCampaignDeadlineResponse struct{}

type CloseCampaignRequest struct {
	ID string `json:"id"`
}

type CloseCampaignResponse struct{}

type GetCampaignsRequest struct {
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
	Status string `json:"status"`
	Q      string `json:"q"`
}

type GetCampaignsResponse struct {
	Campaigns []Campaign `json:"campaigns"`
}

type GetCampaignRequest struct {
	ID string `json:"id"`
}

type GetCampaignResponse Campaign
