package model

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kolstage/backend/internal/domain/tier"
	"github.com/kolstage/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano
const DefaultDateLayout string = "2006-01-02"

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	result := User{
		ID:            user.ID,
		CreatedAt:     user.CreatedAt.Format(DefaultTimeLayout),
		Name:          user.Name,
		Status:        string(user.Status),
		FollowerInput: user.FollowerInput,
		SnsLinks:      user.SnsLinks,
		BankInfo:      user.BankInfo,
		LineID:        user.LineID,
		KakaoID:       user.KakaoID,
	}

	if includeSensitive {
		result.Email = user.Email
		result.Role = string(user.Role)
	}

	if user.FollowerCount.Valid {
		result.FollowerCount = user.FollowerCount.Int64
		if badge, ok := tier.Classify(user.FollowerCount.Int64); ok {
			result.TierBadge = string(badge)
		}
	}

	if user.Tier.Valid {
		result.Tier = user.Tier.String
	}

	if user.TierRequested.Valid {
		result.TierRequested = user.TierRequested.String
	}

	if user.TierRequestedAt.Valid {
		result.TierRequestedAt = user.TierRequestedAt.Time.Format(DefaultTimeLayout)
	}

	return result
}

func ConvertCampaign(campaign *entity.Campaign, applicants, selected int64) Campaign {
	if campaign == nil {
		return Campaign{}
	}

	result := Campaign{
		ID:              campaign.ID,
		CreatedAt:       campaign.CreatedAt.Format(DefaultTimeLayout),
		Title:           campaign.Title,
		BrandName:       campaign.BrandName,
		GuideContent:    campaign.GuideContent,
		GuideURL:        campaign.GuideURL,
		LineID:          campaign.LineID,
		KakaoID:         campaign.KakaoID,
		PayoutAmount:    campaign.PayoutAmount,
		BrandImageURL:   campaign.BrandImageURL,
		Status:          string(campaign.Status),
		ApplicantsCount: applicants,
		SelectedCount:   selected,
	}

	if campaign.RecruitmentQuota.Valid {
		result.RecruitmentQuota = campaign.RecruitmentQuota.Int64
	}

	for _, t := range campaign.FollowerTiers {
		result.FollowerTiers = append(result.FollowerTiers, string(t))
	}

	if campaign.Deadline.Valid {
		result.Deadline = campaign.Deadline.Time.Format(DefaultDateLayout)
	}

	return result
}

func ConvertApplication(application *entity.Application, campaign Campaign, kol User) Application {
	if application == nil {
		return Application{}
	}

	result := Application{
		ID:         application.ID,
		CreatedAt:  application.CreatedAt.Format(DefaultTimeLayout),
		CampaignID: application.CampaignID,
		Campaign:   campaign,
		KolID:      application.KolID,
		Kol:        kol,
		Status:     string(application.Status),
	}

	if application.ResultURL.Valid {
		result.ResultURL = application.ResultURL.String
	}

	return result
}

func ConvertNotification(notification *entity.Notification) Notification {
	if notification == nil {
		return Notification{}
	}

	createdAt := time.UnixMilli(snowflake.ID(notification.ID).Time())
	return Notification{
		ID:        notification.ID,
		CreatedAt: createdAt.Format(DefaultTimeLayout),
		Type:      string(notification.Type),
		Title:     notification.Title,
		Message:   notification.Message,
		IsRead:    notification.IsRead,
	}
}
