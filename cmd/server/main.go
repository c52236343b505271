package main

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"campus_tracker/internal/config"
	"campus_tracker/internal/controllers"
	"campus_tracker/internal/logger"
	"campus_tracker/internal/middleware"
	"campus_tracker/internal/routes"
	"campus_tracker/internal/services"
	"campus_tracker/internal/store"
)

func main() {
	// Structured logging to a rotating file
	logger.Setup()

	// Refuse to serve in production without an explicit signing secret
	if err := middleware.MustHaveSecret(); err != nil {
		log.Fatal(err)
	}

	// Connect to the database and migrate
	db := config.InitDB()

	users := store.NewUserStore(db)
	buses := store.NewBusStore(db)
	notifications := store.NewNotificationStore(db)
	contacts := store.NewContactStore(db)
	feedback := store.NewFeedbackStore(db)
	events := store.NewLocationEventStore(db)

	approval := services.NewApprovalService(users)
	sessions := services.NewSessionService(users, middleware.GenerateToken)
	tracking := services.NewTrackingService(buses, events, claimTTL())

	r := routes.SetupRouter(routes.Deps{
		Auth:          controllers.NewAuthController(approval, sessions),
		Users:         controllers.NewUserController(approval),
		Buses:         controllers.NewBusController(tracking),
		Notifications: controllers.NewNotificationController(notifications),
		Contacts:      controllers.NewContactController(contacts, notifications),
		Feedback:      controllers.NewFeedbackController(feedback, notifications),
		Finder:        users,
	})

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + config.GetEnv("PORT", "5000")
	log.Println("🚀 Server running at " + addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

// claimTTL reads the location-claim lease length from the environment.
func claimTTL() time.Duration {
	raw := config.GetEnv("CLAIM_TTL_SECONDS", "")
	if raw == "" {
		return services.DefaultClaimTTL
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		log.Printf("invalid CLAIM_TTL_SECONDS %q, using default", raw)
		return services.DefaultClaimTTL
	}
	return time.Duration(secs) * time.Second
}
