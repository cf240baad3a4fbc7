package api

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fridgechef/internal/apperr"
	"fridgechef/internal/auth"
	"fridgechef/internal/diary"
	"fridgechef/internal/kitchen"
	"fridgechef/internal/logging"
	"fridgechef/internal/recipe"
)

const msgRouteNotFound = "요청한 API를 찾을 수 없습니다."

// RouterOptions are the settings shared by both services.
type RouterOptions struct {
	Logger         *slog.Logger
	CORSOrigins    []string
	UploadMaxBytes int64
	// Static is the front-end served for every non-API path. Nil disables it.
	Static fs.FS
}

// RecipeServices are the dependencies of the recipe service.
type RecipeServices struct {
	Auth      *auth.Service
	Book      *recipe.Book
	Assistant *kitchen.Assistant
}

// NewRecipeRouter builds the recipe service: accounts, saved recipes,
// ingredient recognition and recipe generation.
func NewRecipeRouter(svc RecipeServices, opts RouterOptions) *gin.Engine {
	r := newEngine(opts)

	authH := NewAuthHandler(svc.Auth)
	recipeH := NewRecipeHandler(svc.Book)
	kitchenH := NewKitchenHandler(svc.Assistant, opts.UploadMaxBytes)
	requireAuth := auth.RequireAuth(svc.Auth, respondError)

	a := r.Group("/api")
	a.POST("/auth/register", authH.Register)
	a.POST("/auth/login", authH.Login)
	a.GET("/auth/me", requireAuth, authH.Me)
	a.PUT("/users/profile", requireAuth, authH.UpdateProfile)

	a.POST("/recipes/save", requireAuth, recipeH.Save)
	a.GET("/recipes/saved", requireAuth, recipeH.List)
	a.DELETE("/recipes/:id", requireAuth, recipeH.Delete)

	a.POST("/analyze-image", kitchenH.AnalyzeImage)
	a.POST("/generate-recipe", kitchenH.GenerateRecipe)

	return r
}

// NewDiaryRouter builds the empathy diary service.
func NewDiaryRouter(analyzer *diary.Analyzer, opts RouterOptions) *gin.Engine {
	r := newEngine(opts)

	diaryH := NewDiaryHandler(analyzer)
	r.POST("/api/analyze", diaryH.Analyze)

	return r
}

func newEngine(opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.MaxMultipartMemory = opts.UploadMaxBytes
	r.Use(gin.Recovery(), logging.Middleware(logger))

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", logging.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", logging.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", health)
	r.NoRoute(notFound(opts.Static))
	return r
}

// notFound answers unknown API paths with a JSON error and everything else
// from the static front-end.
func notFound(static fs.FS) gin.HandlerFunc {
	var files http.Handler
	if static != nil {
		files = http.FileServer(http.FS(static))
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if files == nil || strings.HasPrefix(path, "/api/") || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			respondError(c, apperr.NotFound(msgRouteNotFound))
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}
