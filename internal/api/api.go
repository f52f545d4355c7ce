package api

import (
	"log/slog"
	"runtime"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/riskstack/riskstack/internal/auth"
	"github.com/riskstack/riskstack/internal/core/asset"
	"github.com/riskstack/riskstack/internal/core/catalog"
	"github.com/riskstack/riskstack/internal/core/control"
	"github.com/riskstack/riskstack/internal/core/dashboard"
	"github.com/riskstack/riskstack/internal/core/directory"
	"github.com/riskstack/riskstack/internal/core/finding"
	"github.com/riskstack/riskstack/internal/core/framework"
	"github.com/riskstack/riskstack/internal/core/project"
	"github.com/riskstack/riskstack/internal/core/risk"
	"github.com/riskstack/riskstack/internal/core/vulnerability"
	"github.com/riskstack/riskstack/internal/database/repositories"
	"github.com/riskstack/riskstack/internal/echohttp"
	"github.com/riskstack/riskstack/internal/shared"
)

// filled at build time via -ldflags
var (
	version = "dev"
	commit  = "none"
)

func health(c echo.Context) error {
	return c.JSON(200, map[string]any{
		"status":    "ok",
		"service":   "riskstack",
		"timestamp": time.Now().UTC(),
	})
}

func info(c echo.Context) error {
	return c.JSON(200, map[string]string{
		"version":   version,
		"commit":    commit,
		"goVersion": runtime.Version(),
		"userId":    shared.GetSession(c).GetUserID(),
	})
}

func Start(db shared.DB) {
	// init all repositories using the provided database
	frameworkRepository := repositories.NewFrameworkRepository(db)
	frameworkControlRepository := repositories.NewFrameworkControlRepository(db)
	controlRepository := repositories.NewControlRepository(db)
	projectRepository := repositories.NewProjectRepository(db)
	assetRepository := repositories.NewAssetRepository(db)
	vulnerabilityRepository := repositories.NewVulnerabilityRepository(db)
	riskRepository := repositories.NewRiskRepository(db)
	findingRepository := repositories.NewFindingRepository(db)
	userRepository := repositories.NewUserRepository(db)

	directoryService := directory.NewService(directory.NewDatabaseSource(userRepository))

	// init all http controllers using the repositories
	frameworkController := framework.NewHTTPController(frameworkRepository)
	catalogController := catalog.NewHTTPController(frameworkControlRepository)
	controlController := control.NewHTTPController(controlRepository, frameworkRepository, frameworkControlRepository, vulnerabilityRepository)
	projectController := project.NewHTTPController(projectRepository, assetRepository)
	assetController := asset.NewHTTPController(assetRepository, projectRepository)
	vulnerabilityController := vulnerability.NewHTTPController(vulnerabilityRepository, controlRepository, riskRepository)
	riskController := risk.NewHTTPController(riskRepository, projectRepository, assetRepository, controlRepository, frameworkRepository, vulnerabilityRepository)
	findingController := finding.NewHTTPController(findingRepository, riskRepository)
	directoryController := directory.NewHTTPController(directoryService, userRepository)
	dashboardController := dashboard.NewHTTPController(projectRepository, riskRepository, findingRepository, assetRepository, controlRepository, frameworkRepository)

	server := echohttp.Server()

	apiV1Router := server.Group("/api/v1")

	// the health route stays outside the session middleware
	apiV1Router.GET("/health/", health)

	// everything below this line is protected by the session middleware
	sessionRouter := apiV1Router.Group("", auth.SessionMiddleware(auth.NewTokenVerifier(userRepository)), auth.RequireSession)

	sessionRouter.GET("/info/", info)

	frameworkRouter := sessionRouter.Group("/frameworks")
	frameworkRouter.GET("/", frameworkController.List)
	frameworkRouter.POST("/", frameworkController.Create)
	frameworkRouter.GET("/:frameworkID/", frameworkController.Read)
	frameworkRouter.PATCH("/:frameworkID/", frameworkController.Update)
	frameworkRouter.DELETE("/:frameworkID/", frameworkController.Delete)

	catalogRouter := sessionRouter.Group("/framework-controls")
	catalogRouter.GET("/", catalogController.List)
	catalogRouter.GET("/:frameworkControlID/", catalogController.Read)

	controlRouter := sessionRouter.Group("/controls")
	controlRouter.GET("/", controlController.List)
	controlRouter.POST("/", controlController.Create)
	controlRouter.GET("/:controlID/", controlController.Read)
	controlRouter.PATCH("/:controlID/", controlController.Update)
	controlRouter.DELETE("/:controlID/", controlController.Delete)

	projectRouter := sessionRouter.Group("/projects")
	projectRouter.GET("/", projectController.List)
	projectRouter.POST("/", projectController.Create)
	projectRouter.GET("/:projectID/", projectController.Read)
	projectRouter.PATCH("/:projectID/", projectController.Update)
	projectRouter.DELETE("/:projectID/", projectController.Delete)

	assetRouter := sessionRouter.Group("/assets")
	assetRouter.GET("/", assetController.List)
	assetRouter.POST("/", assetController.Create)
	assetRouter.GET("/:assetID/", assetController.Read)
	assetRouter.PATCH("/:assetID/", assetController.Update)
	assetRouter.DELETE("/:assetID/", assetController.Delete)

	vulnerabilityRouter := sessionRouter.Group("/vulnerabilities")
	vulnerabilityRouter.GET("/", vulnerabilityController.List)
	vulnerabilityRouter.POST("/", vulnerabilityController.Create)
	vulnerabilityRouter.GET("/:vulnerabilityID/", vulnerabilityController.Read)
	vulnerabilityRouter.PATCH("/:vulnerabilityID/", vulnerabilityController.Update)
	vulnerabilityRouter.DELETE("/:vulnerabilityID/", vulnerabilityController.Delete)

	riskRouter := sessionRouter.Group("/risks")
	riskRouter.GET("/", riskController.List)
	riskRouter.POST("/", riskController.Create)
	riskRouter.GET("/summary/", riskController.Summary)
	riskRouter.GET("/:riskID/", riskController.Read)
	riskRouter.PATCH("/:riskID/", riskController.Update)
	riskRouter.DELETE("/:riskID/", riskController.Delete)

	findingRouter := sessionRouter.Group("/findings")
	findingRouter.GET("/", findingController.List)
	findingRouter.POST("/", findingController.Create)
	findingRouter.GET("/:findingID/", findingController.Read)
	findingRouter.PATCH("/:findingID/", findingController.Update)
	findingRouter.DELETE("/:findingID/", findingController.Delete)

	userRouter := sessionRouter.Group("/users")
	userRouter.GET("/", directoryController.ListUsers)
	userRouter.GET("/suggestions/", directoryController.Suggestions)
	userRouter.GET("/:userID/", directoryController.ReadUser)

	sessionRouter.GET("/dashboard/", dashboardController.Stats)

	routes := server.Routes()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	for _, route := range routes {
		if route.Method != "echo_route_not_found" {
			slog.Info(route.Path, "method", route.Method)
		}
	}
	slog.Error("failed to start server", "err", server.Start(":8080").Error())
}
