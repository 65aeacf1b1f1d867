package campaign_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fundhive/internal/apperr"
	"github.com/MrJamesThe3rd/fundhive/internal/campaign"
	"github.com/MrJamesThe3rd/fundhive/internal/pagination"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newService(repo campaign.Repository) *campaign.Service {
	return campaign.NewService(repo, campaign.WithClock(func() time.Time { return fixedNow }))
}

func validParams() campaign.CreateParams {
	return campaign.CreateParams{
		Title:       "  School Roof  ",
		Description: "Fix the roof before the rains",
		Medias:      []string{"a.jpg", "b.jpg", "c.jpg"},
		PriceTarget: decimal.NewFromInt(1000),
		StartDate:   fixedNow,
		EndDate:     fixedNow.Add(30 * 24 * time.Hour),
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    func() campaign.CreateParams
		setupMock func(m *campaign.MockRepository)
		wantKind  apperr.Kind
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: validParams,
			setupMock: func(m *campaign.MockRepository) {
				m.EXPECT().
					CreateCampaign(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *campaign.Campaign) error {
						c.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "TwoMedias",
			params: func() campaign.CreateParams {
				p := validParams()
				p.Medias = p.Medias[:2]

				return p
			},
			wantKind: apperr.KindValidation,
			wantErr:  true,
		},
		{
			name: "NoMedias",
			params: func() campaign.CreateParams {
				p := validParams()
				p.Medias = nil

				return p
			},
			wantKind: apperr.KindValidation,
			wantErr:  true,
		},
		{
			name: "ZeroTarget",
			params: func() campaign.CreateParams {
				p := validParams()
				p.PriceTarget = decimal.Zero

				return p
			},
			wantKind: apperr.KindValidation,
			wantErr:  true,
		},
		{
			name: "EndBeforeStart",
			params: func() campaign.CreateParams {
				p := validParams()
				p.EndDate = p.StartDate.Add(-time.Hour)

				return p
			},
			wantKind: apperr.KindValidation,
			wantErr:  true,
		},
		{
			name: "MissingTitle",
			params: func() campaign.CreateParams {
				p := validParams()
				p.Title = "   "

				return p
			},
			wantKind: apperr.KindValidation,
			wantErr:  true,
		},
		{
			name:   "DuplicateTitle",
			params: validParams,
			setupMock: func(m *campaign.MockRepository) {
				m.EXPECT().
					CreateCampaign(gomock.Any(), gomock.Any()).
					Return(campaign.ErrDuplicateTitle)
			},
			wantKind: apperr.KindValidation,
			wantErr:  true,
		},
		{
			name:   "RepoError",
			params: validParams,
			setupMock: func(m *campaign.MockRepository) {
				m.EXPECT().
					CreateCampaign(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := campaign.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := newService(repo).Create(context.Background(), tt.params())

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)

				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				}

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, "School Roof", got.Title)
			assert.Contains(t, got.Slug, "school-roof-")
			assert.True(t, got.Open)
			assert.Nil(t, got.StatusReason)
			assert.True(t, got.CurrentPrice.IsZero())
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := campaign.NewMockRepository(ctrl)
	svc := newService(repo)

	filter := campaign.ListFilter{Search: "roof", Params: pagination.Params{Page: 2, Limit: 2}}

	repo.EXPECT().
		ListCampaigns(gomock.Any(), filter).
		Return([]*campaign.Campaign{{ID: uuid.New()}, {ID: uuid.New()}}, 5, nil)

	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got.Campaigns, 2)
	assert.Equal(t, 5, got.Total)
	require.NotNil(t, got.Page)
	assert.Equal(t, 3, got.Page.TotalPages)

	_, err = svc.List(context.Background(), campaign.ListFilter{Params: pagination.Params{Page: 1}})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantKind apperr.Kind
	}{
		{name: "Success"},
		{name: "NotFound", repoErr: campaign.ErrNotFound, wantKind: apperr.KindNotFound},
		{name: "HasDonations", repoErr: campaign.ErrHasDonations, wantKind: apperr.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			id := uuid.New()
			repo := campaign.NewMockRepository(ctrl)
			repo.EXPECT().DeleteCampaign(gomock.Any(), id).Return(tt.repoErr)

			err := newService(repo).Delete(context.Background(), id)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}

			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}

func TestService_CheckEligibility(t *testing.T) {
	id := uuid.New()

	open := func(end time.Time) *campaign.Campaign {
		return &campaign.Campaign{ID: id, Open: true, PriceTarget: decimal.NewFromInt(1000), EndDate: end}
	}

	tests := []struct {
		name      string
		setupMock func(m *campaign.MockRepository)
		wantKind  apperr.Kind
	}{
		{
			name: "Open",
			setupMock: func(m *campaign.MockRepository) {
				m.EXPECT().GetCampaign(gomock.Any(), id).Return(open(fixedNow.Add(time.Hour)), nil)
			},
		},
		{
			name: "NotFound",
			setupMock: func(m *campaign.MockRepository) {
				m.EXPECT().GetCampaign(gomock.Any(), id).Return(nil, campaign.ErrNotFound)
			},
			wantKind: apperr.KindNotFound,
		},
		{
			name: "AlreadyClosed",
			setupMock: func(m *campaign.MockRepository) {
				c := open(fixedNow.Add(time.Hour))
				c.Close(campaign.ReasonPriceReached)
				m.EXPECT().GetCampaign(gomock.Any(), id).Return(c, nil)
			},
			wantKind: apperr.KindCampaignClosed,
		},
		{
			name: "DeadlinePassedClosesLazily",
			setupMock: func(m *campaign.MockRepository) {
				m.EXPECT().GetCampaign(gomock.Any(), id).Return(open(fixedNow.Add(-time.Minute)), nil)
				m.EXPECT().CloseCampaign(gomock.Any(), id, campaign.ReasonDeadlineReached).Return(true, nil)
			},
			wantKind: apperr.KindCampaignClosed,
		},
		{
			name: "DeadlinePassedCloseFails",
			setupMock: func(m *campaign.MockRepository) {
				m.EXPECT().GetCampaign(gomock.Any(), id).Return(open(fixedNow.Add(-time.Minute)), nil)
				m.EXPECT().CloseCampaign(gomock.Any(), id, campaign.ReasonDeadlineReached).Return(false, errors.New("db error"))
			},
			wantKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := campaign.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := newService(repo).CheckEligibility(context.Background(), id)
			if tt.wantKind == "" {
				require.NoError(t, err)
				assert.Equal(t, id, got.ID)

				return
			}

			require.Error(t, err)
			assert.Nil(t, got)

			if tt.wantKind == apperr.KindInternal {
				_, ok := apperr.As(err)
				assert.False(t, ok)

				return
			}

			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}

func TestService_CloseExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := campaign.NewMockRepository(ctrl)
	svc := newService(repo)

	a, b, c := uuid.New(), uuid.New(), uuid.New()

	repo.EXPECT().ListExpiredOpen(gomock.Any(), fixedNow).Return([]uuid.UUID{a, b, c}, nil)
	repo.EXPECT().CloseCampaign(gomock.Any(), a, campaign.ReasonDeadlineReached).Return(true, nil)
	repo.EXPECT().CloseCampaign(gomock.Any(), b, campaign.ReasonDeadlineReached).Return(false, errors.New("lock timeout"))
	repo.EXPECT().CloseCampaign(gomock.Any(), c, campaign.ReasonDeadlineReached).Return(false, nil)

	closed, err := svc.CloseExpired(context.Background())
	assert.Equal(t, 1, closed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), b.String())
}

func TestCampaign_CloseOnce(t *testing.T) {
	c := &campaign.Campaign{Open: true, PriceTarget: decimal.NewFromInt(10), CurrentPrice: decimal.NewFromInt(10)}
	assert.True(t, c.ReachedTarget())

	assert.True(t, c.Close(campaign.ReasonPriceReached))
	assert.False(t, c.Close(campaign.ReasonDeadlineReached))
	require.NotNil(t, c.StatusReason)
	assert.Equal(t, campaign.ReasonPriceReached, *c.StatusReason)
	assert.False(t, c.ReachedTarget())
}
