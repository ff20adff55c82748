package model

type AccessToken struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RefreshToken struct {
	Family  string
	Counter uint64
}

type User struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`

	Email  string `json:"email,omitempty"`
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status"`

	FollowerInput string `json:"follower_input,omitempty"`
	FollowerCount int64  `json:"follower_count,omitempty"`

	// TierBadge is recomputed from the follower count on every read, it is
	// display only and distinct from the granted tier.
	TierBadge       string `json:"tier_badge,omitempty"`
	Tier            string `json:"tier,omitempty"`
	TierRequested   string `json:"tier_requested,omitempty"`
	TierRequestedAt string `json:"tier_requested_at,omitempty"`

	SnsLinks []string       `json:"sns_links,omitempty"`
	BankInfo map[string]any `json:"bank_info,omitempty"`
	LineID   string         `json:"line_id,omitempty"`
	KakaoID  string         `json:"kakao_id,omitempty"`
}

type Campaign struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`

	Title        string `json:"title"`
	BrandName    string `json:"brand_name"`
	GuideContent string `json:"guide_content,omitempty"`
	GuideURL     string `json:"guide_url,omitempty"`
	LineID       string `json:"line_id,omitempty"`
	KakaoID      string `json:"kakao_id,omitempty"`

	PayoutAmount float64 `json:"payout_amount"`

	// Zero means the recruitment is unlimited.
	RecruitmentQuota int64 `json:"recruitment_quota,omitempty"`

	BrandImageURL string   `json:"brand_image_url,omitempty"`
	FollowerTiers []string `json:"follower_tiers,omitempty"`
	Deadline      string   `json:"deadline,omitempty"`
	Status        string   `json:"status"`

	// Derived on read over the campaign applications.
	ApplicantsCount int64 `json:"applicants_count"`
	SelectedCount   int64 `json:"selected_count"`

	CanApply            bool   `json:"can_apply"`
	MyApplicationStatus string `json:"my_application_status,omitempty"`
}

type Application struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`

	CampaignID string   `json:"campaign_id"`
	Campaign   Campaign `json:"campaign,omitempty"`

	KolID string `json:"kol_id"`
	Kol   User   `json:"kol,omitempty"`

	Status    string `json:"status"`
	ResultURL string `json:"result_url,omitempty"`
}

type Notification struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"created_at"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message,omitempty"`
	IsRead    bool   `json:"is_read"`
}
