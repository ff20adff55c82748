package testutil

import (
	"context"
	"database/sql"
	"reflect"

	"github.com/google/uuid"
	"github.com/kolstage/backend/internal/entity"
	"github.com/kolstage/backend/internal/repository"
)

// SampleUser creates an approved KOL in database with many fields randomized.
// The sample can be overwritten by non-zero fields of init.
func SampleUser(ctx context.Context, init *entity.User) entity.User {
	userRepo := repository.NewUserRepository(nil)

	sample := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Email:          uuid.NewString() + "@example.com",
		HashedPassword: "hashed",
		Name:           uuid.NewString(),
		Role:           entity.RoleUser,
		Status:         entity.UserStatusApproved,
		FollowerInput:  "12k",
		FollowerCount:  sql.NullInt64{Valid: true, Int64: 12000},
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := userRepo.Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleAdmin(ctx context.Context, init *entity.User) entity.User {
	sample := entity.User{Role: entity.RoleAdmin, Status: entity.UserStatusApproved}
	if init != nil {
		overwriteFields(&sample, *init)
	}

	return SampleUser(ctx, &sample)
}

func SampleCampaign(ctx context.Context, init *entity.Campaign) entity.Campaign {
	campaignRepo := repository.NewCampaignRepository()

	sample := &entity.Campaign{
		Base:         entity.Base{ID: uuid.NewString()},
		Title:        uuid.NewString(),
		BrandName:    uuid.NewString(),
		PayoutAmount: 100000,
		Status:       entity.CampaignActive,
		CreatedBy:    uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := campaignRepo.Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleApplication(ctx context.Context, init *entity.Application) entity.Application {
	applicationRepo := repository.NewApplicationRepository()

	sample := &entity.Application{
		Base:       entity.Base{ID: uuid.NewString()},
		KolID:      uuid.NewString(),
		CampaignID: uuid.NewString(),
		Status:     entity.ApplicationApplied,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := applicationRepo.Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
