package domain

import (
	"context"

	"github.com/kolstage/backend/internal/common"
	"github.com/kolstage/backend/internal/model"
	"github.com/kolstage/backend/pkg/errorx"
	"github.com/kolstage/backend/pkg/storage"
	"github.com/kolstage/backend/pkg/xcontext"
)

type FileDomain interface {
	UploadBrandImage(context.Context, *model.UploadBrandImageRequest) (*model.UploadBrandImageResponse, error)
}

type fileDomain struct {
	storage storage.Storage
}

func NewFileDomain(storage storage.Storage) FileDomain {
	return &fileDomain{storage: storage}
}

func (d *fileDomain) UploadBrandImage(
	ctx context.Context, req *model.UploadBrandImageRequest,
) (*model.UploadBrandImageResponse, error) {
	images, err := common.ProcessImage(ctx, d.storage, "image")
	if err != nil {
		return nil, err
	}

	if len(images) == 0 {
		xcontext.Logger(ctx).Errorf("Got an empty upload response")
		return nil, errorx.Unknown
	}

	return &model.UploadBrandImageResponse{URL: images[0].Url}, nil
}
