package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/kolstage/backend/internal/middleware"
	"github.com/kolstage/backend/pkg/router"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	server.loadConfig()
	server.loadLogger()
	server.loadDatabase()
	server.loadRedisClient()
	server.loadStorage()
	server.loadPublisher()
	server.loadRepos()
	server.loadDomains()
	server.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	log.Printf("Starting server on port: %s\n", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	log.Printf("server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Public API.
	router.POST(s.router, "/register", s.authDomain.Register)
	router.POST(s.router, "/login", s.authDomain.Login)
	router.POST(s.router, "/refresh", s.authDomain.Refresh)

	// These following APIs need authentication with Access Token.
	authRouter := s.router.Branch()
	authVerifier := middleware.NewAuthVerifier().WithAccessToken()
	authRouter.Before(authVerifier.Middleware())
	{
		// User API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authRouter, "/updateUser", s.userDomain.Update)
		router.POST(authRouter, "/requestTierUpgrade", s.userDomain.RequestTierUpgrade)

		// Campaign API
		router.GET(authRouter, "/getCampaigns", s.campaignDomain.GetList)
		router.GET(authRouter, "/getCampaign", s.campaignDomain.Get)

		// Application API
		router.POST(authRouter, "/applyCampaign", s.applicationDomain.Apply)
		router.POST(authRouter, "/submitResult", s.applicationDomain.SubmitResult)
		router.GET(authRouter, "/getMyApplications", s.applicationDomain.GetMyApplications)
		router.GET(authRouter, "/getPayoutHistory", s.applicationDomain.GetPayoutHistory)

		// Notification API
		router.GET(authRouter, "/getNotifications", s.notificationDomain.GetList)
		router.POST(authRouter, "/readNotification", s.notificationDomain.Read)
		router.POST(authRouter, "/readAllNotifications", s.notificationDomain.ReadAll)
	}

	// These following APIs are for admins only.
	adminRouter := authRouter.Branch()
	adminRouter.Before(middleware.NewOnlyAdmin(s.userRepo).Middleware())
	{
		// Campaign management API
		router.POST(adminRouter, "/createCampaign", s.campaignDomain.Create)
		router.POST(adminRouter, "/updateCampaign", s.campaignDomain.Update)
		router.POST(adminRouter, "/extendCampaignDeadline", s.campaignDomain.ExtendDeadline)
		router.POST(adminRouter, "/closeCampaign", s.campaignDomain.Close)
		router.POST(adminRouter, "/uploadBrandImage", s.fileDomain.UploadBrandImage)

		// Application review API
		router.GET(adminRouter, "/getApplications", s.applicationDomain.GetList)
		router.POST(adminRouter, "/selectApplication", s.applicationDomain.Select)
		router.POST(adminRouter, "/confirmApplication", s.applicationDomain.Confirm)
		router.POST(adminRouter, "/markApplicationPaid", s.applicationDomain.MarkPaid)

		// KOL review API
		router.GET(adminRouter, "/getPendingUsers", s.userDomain.GetPendingUsers)
		router.POST(adminRouter, "/approveUser", s.userDomain.Approve)
		router.POST(adminRouter, "/rejectUser", s.userDomain.Reject)
		router.GET(adminRouter, "/getTierUpgradeRequests", s.userDomain.GetTierUpgradeRequests)
		router.POST(adminRouter, "/approveTierUpgrade", s.userDomain.ApproveTierUpgrade)
		router.POST(adminRouter, "/rejectTierUpgrade", s.userDomain.RejectTierUpgrade)
	}
}
