package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/config"
	"github.com/moringa/darasa-api/database"
	"github.com/moringa/darasa-api/handlers"
	auth_handlers "github.com/moringa/darasa-api/handlers/auth"
	checkout_handlers "github.com/moringa/darasa-api/handlers/checkout"
	course_handlers "github.com/moringa/darasa-api/handlers/course"
	directory_handlers "github.com/moringa/darasa-api/handlers/directory"
	message_handlers "github.com/moringa/darasa-api/handlers/message"
	"github.com/moringa/darasa-api/services"
	"github.com/moringa/darasa-api/services/payment"
	"github.com/moringa/darasa-api/services/receipt"
	"github.com/moringa/darasa-api/utils"
	"github.com/moringa/darasa-api/utils/auth"
	"github.com/moringa/darasa-api/utils/middleware"
)

// Deps are the collaborators built at boot and injected into handlers.
// Storage and Attempts may be nil.
type Deps struct {
	Config   *config.Config
	Store    database.Storage
	Gateway  payment.Gateway
	Renderer receipt.Renderer
	Storage  course_handlers.ObjectStore
	Attempts middleware.AttemptStore
	// DisableAccessLog silences fiber's request log, used by tests
	DisableAccessLog bool
}

func SetupRoutes(app *fiber.App, deps Deps) {
	cfg := deps.Config
	db := deps.Store.GetDB()

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: cfg.JWT_SECRET,
		Expiry: time.Duration(cfg.JWT_EXPIRY_MINUTES) * time.Minute,
		Issuer: cfg.JWT_ISSUER,
	})
	blacklist := auth.NewBlacklistService(db)

	var bruteForceProtection *middleware.BruteForceProtection
	if deps.Attempts != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(deps.Attempts)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, blacklist, db, cfg.AUTH_HEADER)
	withRole := func(guard fiber.Handler) func(...fiber.Handler) []fiber.Handler {
		return func(chain ...fiber.Handler) []fiber.Handler {
			return append([]fiber.Handler{authMiddleware.Required(), guard}, chain...)
		}
	}
	asStudent := withRole(authMiddleware.RequireStudent())
	asAdmin := withRole(authMiddleware.RequireAdmin())

	courseService := services.NewCourseService(db)
	enrollmentService := services.NewEnrollmentService(db, deps.Gateway, services.CheckoutURLs{
		Success:  cfg.CHECKOUT_SUCCESS_URL,
		Cancel:   cfg.CHECKOUT_CANCEL_URL,
		Currency: cfg.CHECKOUT_CURRENCY,
	})

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, blacklist, bruteForceProtection, cfg.BCRYPT_COST)
	courseHandler := course_handlers.NewCourseHandler(courseService, deps.Storage)
	messageHandler := message_handlers.NewMessageHandler(services.NewMessageService(db))
	directoryHandler := directory_handlers.NewDirectoryHandler(services.NewDirectoryService(db))
	checkoutHandler := checkout_handlers.NewCheckoutHandler(enrollmentService, deps.Renderer)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    cfg.Origins(),
		TokenHeader:       cfg.AUTH_HEADER,
		RateLimitRequests: cfg.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   1 * time.Minute,
		DisableAccessLog:  deps.DisableAccessLog,
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, deps.Store))

	// Auth
	app.Post("/student/login", bruteForceProtection.CheckLock(), authHandler.LoginStudent)
	app.Post("/admin/login", bruteForceProtection.CheckLock(), authHandler.LoginAdmin)
	app.Post("/signup/student", authHandler.SignupStudent)
	app.Post("/signup/admin", authHandler.SignupAdmin)
	app.Post("/logout", authMiddleware.Required(), authHandler.Logout)

	// Profiles
	app.Get("/profile/student", asStudent(authHandler.GetStudentProfile)...)
	app.Post("/profile/student", asStudent(authHandler.UpdateStudentProfile)...)
	app.Get("/profile/admin", asAdmin(authHandler.GetAdminProfile)...)
	app.Post("/profile/admin", asAdmin(authHandler.UpdateAdminProfile)...)

	// Catalogue and enrollment browsing
	app.Get("/course", courseHandler.ListCourses)
	app.Get("/courses/student", asStudent(courseHandler.ListStudentCourses)...)
	app.Get("/student/course/:id", asStudent(courseHandler.GetCourse)...)
	app.Get("/student/course/:id/module", asStudent(courseHandler.ListModules)...)

	// Course authoring
	app.Get("/courses/admin", asAdmin(courseHandler.ListAdminCourses)...)
	app.Post("/courses/admin", asAdmin(middleware.AdminAuditLog(db, "course_create", "courses"), courseHandler.CreateCourse)...)
	app.Patch("/courses/admin", asAdmin(middleware.AdminAuditLog(db, "course_update", "courses"), courseHandler.UpdateCourse)...)
	app.Delete("/courses/admin/:id", asAdmin(middleware.AdminAuditLog(db, "course_delete", "courses"), courseHandler.DeleteCourse)...)
	app.Post("/courses/admin/:id/thumbnail", asAdmin(middleware.AdminAuditLog(db, "course_thumbnail", "courses"), courseHandler.UploadThumbnail)...)

	// Messages
	app.Post("/messages/student", asStudent(messageHandler.SendToAdmin)...)
	app.Get("/messages/student/sent", asStudent(messageHandler.SentByStudent)...)
	app.Get("/messages/from-admin", asStudent(messageHandler.StudentInbox)...)
	app.Get("/messages/admin", asAdmin(messageHandler.AdminInbox)...)
	app.Post("/messages/admin", asAdmin(messageHandler.SendToStudent)...)
	app.Get("/messages/admin/sent", asAdmin(messageHandler.SentByAdmin)...)

	// Directory search (any authenticated principal)
	app.Get("/admins", authMiddleware.Required(), directoryHandler.SearchAdmins)
	app.Get("/studentsmail", authMiddleware.Required(), directoryHandler.SearchStudents)

	// Checkout
	app.Get("/checkout/:course_id", asStudent(checkoutHandler.Checkout)...)
	app.Get("/success", asStudent(checkoutHandler.Success)...)
	app.Get("/cancel", checkoutHandler.Cancel)
}
